package providers

import (
	"context"
	"fmt"

	"github.com/Yester03/ipinfotool/intellib"
)

type ipapicomProvider struct {
	client intellib.HTTPClient
}

func (i ipapicomProvider) Name() string {
	return NameIPAPICom
}

func (i ipapicomProvider) Enabled() bool {
	return true
}

func (i ipapicomProvider) Lookup(ctx context.Context, target string) (intellib.GeoRecord, error) {
	// The free tier of ip-api.com does not serve HTTPS.
	raw, err := fetchJSON(ctx, i.client, "http://ip-api.com/json/"+target, nil)
	if err != nil {
		return intellib.GeoRecord{}, err
	}

	if status, _ := raw["status"].(string); status != "success" {
		message, _ := raw["message"].(string)

		return intellib.GeoRecord{}, intellib.NewLookupError(intellib.ErrorKindParse,
			fmt.Errorf("failed response: status=%s, message=%s", status, message))
	}

	return normalizeIPAPICom(raw), nil
}

// NewIPAPICom builds a provider for ip-api.com. No credential is
// needed.
func NewIPAPICom(client intellib.HTTPClient) intellib.Provider {
	return ipapicomProvider{
		client: client,
	}
}
