package providers

import (
	"context"
	"fmt"

	"github.com/Yester03/ipinfotool/intellib"
)

type ipwhoisProvider struct {
	client intellib.HTTPClient
}

func (i ipwhoisProvider) Name() string {
	return NameIPWhois
}

func (i ipwhoisProvider) Enabled() bool {
	return true
}

func (i ipwhoisProvider) Lookup(ctx context.Context, target string) (intellib.GeoRecord, error) {
	raw, err := fetchJSON(ctx, i.client, "https://ipwho.is/"+target, nil)
	if err != nil {
		return intellib.GeoRecord{}, err
	}

	// ipwho.is answers 200 with success=false on application-level
	// failures like reserved ranges.
	if success, ok := raw["success"].(bool); ok && !success {
		message, _ := raw["message"].(string)

		return intellib.GeoRecord{}, intellib.NewLookupError(intellib.ErrorKindParse,
			fmt.Errorf("failed response: %s", message))
	}

	return normalizeIPWhois(raw), nil
}

// NewIPWhois builds a provider for ipwho.is. No credential is needed.
func NewIPWhois(client intellib.HTTPClient) intellib.Provider {
	return ipwhoisProvider{
		client: client,
	}
}
