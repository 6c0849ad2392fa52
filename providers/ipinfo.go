package providers

import (
	"context"
	"net/http"

	"github.com/Yester03/ipinfotool/intellib"
)

type ipinfoProvider struct {
	authToken string
	client    intellib.HTTPClient
}

func (i ipinfoProvider) Name() string {
	return NameIPInfo
}

func (i ipinfoProvider) Enabled() bool {
	return true
}

func (i ipinfoProvider) Lookup(ctx context.Context, target string) (intellib.GeoRecord, error) {
	url := "https://ipinfo.io/json"

	if target != "" {
		url = "https://ipinfo.io/" + target + "/json"
	}

	var headers http.Header

	if i.authToken != "" {
		headers = http.Header{}
		headers.Set("Authorization", "Bearer "+i.authToken)
	}

	raw, err := fetchJSON(ctx, i.client, url, headers)
	if err != nil {
		return intellib.GeoRecord{}, err
	}

	return normalizeIPInfo(raw), nil
}

// NewIPInfo builds a provider for ipinfo.io. The token is optional:
// without it the free tier is used.
func NewIPInfo(client intellib.HTTPClient, authToken string) intellib.Provider {
	return ipinfoProvider{
		authToken: authToken,
		client:    client,
	}
}
