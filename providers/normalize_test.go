package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yester03/ipinfotool/providers"
)

var allProviderNames = []string{
	providers.NameIPAPI,
	providers.NameIPInfo,
	providers.NameIPWhois,
	providers.NameIPAPICom,
	providers.NameIPData,
}

func TestNormalizersAreTotal(t *testing.T) {
	t.Parallel()

	hostile := []map[string]interface{}{
		nil,
		{},
		{"country": nil, "city": nil, "asn": nil},
		{"country": 42.0, "asn": true, "org": []interface{}{"x"}},
		{"something": "entirely", "unexpected": map[string]interface{}{"deep": 1.0}},
		{"connection": "not-an-object", "as": 12.5},
	}

	for _, name := range allProviderNames {
		normalize := providers.NormalizerFor(name)

		for _, raw := range hostile {
			assert.NotPanics(t, func() {
				normalize(raw)
			}, "provider %s", name)
		}
	}
}

func TestNormalizerForUnknownName(t *testing.T) {
	t.Parallel()

	rec := providers.NormalizerFor("no-such-provider")(map[string]interface{}{
		"country": "US",
	})

	assert.True(t, rec.Empty())
}

func TestNormalizeCountryNameFallback(t *testing.T) {
	t.Parallel()

	rec := providers.NormalizerFor(providers.NameIPAPI)(map[string]interface{}{
		"country_name": "Japan",
	})

	assert.Equal(t, "Japan", rec.Country)
}

func TestNormalizeCombinedASNSplit(t *testing.T) {
	t.Parallel()

	rec := providers.NormalizerFor(providers.NameIPAPICom)(map[string]interface{}{
		"as": "AS12345 Example ISP",
	})

	assert.Equal(t, "12345", rec.ASN)
	assert.Equal(t, "Example ISP", rec.ASOrg)
}

func TestNormalizeNumericASN(t *testing.T) {
	t.Parallel()

	rec := providers.NormalizerFor(providers.NameIPWhois)(map[string]interface{}{
		"asn": 12345.0,
	})

	assert.Equal(t, "12345", rec.ASN)
}

func TestNormalizeBareASNWithoutOrg(t *testing.T) {
	t.Parallel()

	rec := providers.NormalizerFor(providers.NameIPInfo)(map[string]interface{}{
		"org": "AS15169",
	})

	assert.Equal(t, "15169", rec.ASN)
	assert.Equal(t, "", rec.ASOrg)
	assert.Equal(t, "AS15169", rec.ISP)
}

func TestNormalizeEmptyIsDegradedSuccess(t *testing.T) {
	t.Parallel()

	for _, name := range allProviderNames {
		rec := providers.NormalizerFor(name)(map[string]interface{}{})

		assert.True(t, rec.Empty(), "provider %s", name)
	}
}
