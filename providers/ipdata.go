package providers

import (
	"context"
	"net/url"

	"github.com/Yester03/ipinfotool/intellib"
)

type ipdataProvider struct {
	authToken string
	client    intellib.HTTPClient
}

func (i ipdataProvider) Name() string {
	return NameIPData
}

func (i ipdataProvider) Enabled() bool {
	return i.authToken != ""
}

func (i ipdataProvider) Lookup(ctx context.Context, target string) (intellib.GeoRecord, error) {
	if i.authToken == "" {
		return intellib.GeoRecord{}, intellib.NewLookupError(intellib.ErrorKindDisabled,
			ErrAuthTokenIsRequired)
	}

	raw, err := fetchJSON(ctx, i.client, i.buildURL(target), nil)
	if err != nil {
		return intellib.GeoRecord{}, err
	}

	return normalizeIPData(raw), nil
}

func (i ipdataProvider) buildURL(target string) string {
	getQuery := url.Values{}

	getQuery.Set("api-key", i.authToken)

	u := url.URL{
		Scheme:   "https",
		Host:     "api.ipdata.co",
		Path:     "/" + target,
		RawQuery: getQuery.Encode(),
	}

	return u.String()
}

// NewIPData builds a provider for ipdata.co. The service requires an
// API key; without one the provider is constructed disabled and no
// network call is ever attempted.
func NewIPData(client intellib.HTTPClient, authToken string) intellib.Provider {
	return ipdataProvider{
		authToken: authToken,
		client:    client,
	}
}
