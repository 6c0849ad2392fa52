package intellib

// SelfTarget is a sentinel reported in LookupResult.Target when no
// explicit IP address was supplied and the lookup went after the
// caller's own address.
const SelfTarget = "self"

// GeoRecord is the canonical, provider-agnostic geolocation schema.
// Every provider response is mapped into this exact set of fields so
// results can be compared side by side. Any field may be empty: a
// provider which returns nothing useful is a degraded success, not a
// failure.
type GeoRecord struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
	ASN     string `json:"asn,omitempty"`
	ASOrg   string `json:"as_org,omitempty"`
	ISP     string `json:"isp,omitempty"`
}

// Empty is true if normalization yielded no usable fields.
func (g GeoRecord) Empty() bool {
	return g == GeoRecord{}
}

// ProviderResult is the outcome of one provider call for one lookup.
// Data is present iff OK; ErrorKind is present iff not OK.
type ProviderResult struct {
	Provider  string     `json:"provider"`
	OK        bool       `json:"ok"`
	Data      *GeoRecord `json:"data"`
	ErrorKind ErrorKind  `json:"error_kind,omitempty"`
}

// Consensus is a cross-provider verdict derived from the successful
// results of one lookup: the most agreed-upon country and, within that
// country, the most agreed-upon city (phonetic spelling variations are
// merged).
type Consensus struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// LookupResult is a complete result set for one target: exactly one
// ProviderResult per configured provider, in registry order. Failed
// providers are represented, never omitted.
type LookupResult struct {
	Target    string           `json:"target"`
	Providers []ProviderResult `json:"providers"`
	Consensus Consensus        `json:"consensus"`
}

// SelfAddresses holds the caller's detected public addresses. Either
// family may be absent (empty string); absence of IPv6 in particular is
// an ordinary outcome, not an error.
type SelfAddresses struct {
	IPv4 string
	IPv6 string
}

// Primary returns the address a lookup should target: IPv4 when
// present, IPv6 otherwise. May be empty when the host has no detectable
// public address at all.
func (s SelfAddresses) Primary() string {
	if s.IPv4 != "" {
		return s.IPv4
	}

	return s.IPv6
}
