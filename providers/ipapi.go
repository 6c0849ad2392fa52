package providers

import (
	"context"

	"github.com/Yester03/ipinfotool/intellib"
)

type ipapiProvider struct {
	client intellib.HTTPClient
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Enabled() bool {
	return true
}

func (i ipapiProvider) Lookup(ctx context.Context, target string) (intellib.GeoRecord, error) {
	url := "https://ipapi.co/json/"

	if target != "" {
		url = "https://ipapi.co/" + target + "/json/"
	}

	raw, err := fetchJSON(ctx, i.client, url, nil)
	if err != nil {
		return intellib.GeoRecord{}, err
	}

	return normalizeIPAPI(raw), nil
}

// NewIPAPI builds a provider for ipapi.co. The free tier needs no
// credential.
func NewIPAPI(client intellib.HTTPClient) intellib.Provider {
	return ipapiProvider{
		client: client,
	}
}
