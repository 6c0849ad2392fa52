package providers

import (
	"strconv"
	"strings"

	"github.com/Yester03/ipinfotool/intellib"
)

// NormalizerFunc maps one provider's raw response shape into the
// canonical record. Normalizers are total: missing, extra or malformed
// fields degrade to empty strings and never fail. A normalization bug
// must not take the whole fan-out down.
type NormalizerFunc func(raw map[string]interface{}) intellib.GeoRecord

var normalizers = map[string]NormalizerFunc{
	NameIPAPI:    normalizeIPAPI,
	NameIPInfo:   normalizeIPInfo,
	NameIPWhois:  normalizeIPWhois,
	NameIPAPICom: normalizeIPAPICom,
	NameIPData:   normalizeIPData,
}

// NormalizerFor returns the mapping strategy for the given provider
// name. Unknown names get a normalizer which maps everything to an
// empty record.
func NormalizerFor(name string) NormalizerFunc {
	if fn, ok := normalizers[name]; ok {
		return fn
	}

	return func(_ map[string]interface{}) intellib.GeoRecord {
		return intellib.GeoRecord{}
	}
}

func normalizeIPAPI(raw map[string]interface{}) intellib.GeoRecord {
	return intellib.GeoRecord{
		Country: stringField(raw, "country_code", "country_name"),
		Region:  stringField(raw, "region"),
		City:    stringField(raw, "city"),
		ASN:     stripASPrefix(stringField(raw, "asn")),
		ASOrg:   stringField(raw, "org"),
		// ipapi.co combines org and ISP.
		ISP: stringField(raw, "org"),
	}
}

func normalizeIPInfo(raw map[string]interface{}) intellib.GeoRecord {
	org := stringField(raw, "org")
	asn, asOrg := splitASNOrg(org)

	return intellib.GeoRecord{
		Country: stringField(raw, "country"),
		Region:  stringField(raw, "region"),
		City:    stringField(raw, "city"),
		ASN:     asn,
		ASOrg:   asOrg,
		ISP:     org,
	}
}

func normalizeIPWhois(raw map[string]interface{}) intellib.GeoRecord {
	// ipwho.is serves asn/org/isp either flattened or nested under
	// "connection", depending on the requested output.
	connection, _ := raw["connection"].(map[string]interface{})

	asn := stripASPrefix(stringField(raw, "asn"))
	if asn == "" {
		asn = stripASPrefix(stringField(connection, "asn"))
	}

	asOrg := stringField(raw, "org")
	if asOrg == "" {
		asOrg = stringField(connection, "org")
	}

	isp := stringField(raw, "isp")
	if isp == "" {
		isp = stringField(connection, "isp")
	}

	return intellib.GeoRecord{
		Country: stringField(raw, "country_code", "country"),
		Region:  stringField(raw, "region"),
		City:    stringField(raw, "city"),
		ASN:     asn,
		ASOrg:   asOrg,
		ISP:     isp,
	}
}

func normalizeIPAPICom(raw map[string]interface{}) intellib.GeoRecord {
	asn, asOrg := splitASNOrg(stringField(raw, "as"))

	return intellib.GeoRecord{
		Country: stringField(raw, "countryCode", "country"),
		Region:  stringField(raw, "regionName"),
		City:    stringField(raw, "city"),
		ASN:     asn,
		ASOrg:   asOrg,
		ISP:     stringField(raw, "isp"),
	}
}

func normalizeIPData(raw map[string]interface{}) intellib.GeoRecord {
	// ipdata.co serves asn either as a plain value or as an object
	// like {"asn": "AS12345", "name": ...}.
	asn := stripASPrefix(stringField(raw, "asn"))
	asOrg := stringField(raw, "organisation")

	if asnObject, ok := raw["asn"].(map[string]interface{}); ok {
		asn = stripASPrefix(stringField(asnObject, "asn"))

		if asOrg == "" {
			asOrg = stringField(asnObject, "name")
		}
	}

	return intellib.GeoRecord{
		Country: stringField(raw, "country_code", "country_name"),
		Region:  stringField(raw, "region", "region_name"),
		City:    stringField(raw, "city"),
		ASN:     asn,
		ASOrg:   asOrg,
		ISP:     stringField(raw, "organisation"),
	}
}

// stringField returns the first usable value among the given keys.
// JSON numbers are rendered as their integer form since providers
// disagree on whether ASNs are numbers or strings.
func stringField(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch value := raw[k].(type) {
		case string:
			if value != "" {
				return value
			}
		case float64:
			return strconv.FormatInt(int64(value), 10)
		}
	}

	return ""
}

// splitASNOrg splits a combined value like "AS12345 Example ISP" into
// a bare ASN and the organization name.
func splitASNOrg(value string) (string, string) {
	if value == "" {
		return "", ""
	}

	parts := strings.SplitN(value, " ", 2)
	asn := stripASPrefix(parts[0])

	if len(parts) == 1 {
		return asn, ""
	}

	return asn, strings.TrimSpace(parts[1])
}

// stripASPrefix normalizes "AS12345" and "as12345" to "12345" so ASNs
// compare equal across providers.
func stripASPrefix(value string) string {
	if len(value) >= 2 && (value[:2] == "AS" || value[:2] == "as") {
		return value[2:]
	}

	return value
}
