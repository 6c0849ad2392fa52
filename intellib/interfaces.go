package intellib

import (
	"context"
	"net/http"
)

// Provider queries a single external geolocation service.
//
// Lookup takes a target IP address in its textual form. An empty target
// means 'the address of the caller as the provider sees it': every
// supported service has an endpoint variant which geolocates the
// requesting host.
//
// Enabled reports whether the provider is able to issue requests at
// all. A provider which requires a credential that was not supplied at
// startup is constructed disabled and must never be asked to do a
// network call. The flag is derived once and never changes during the
// process lifetime.
type Provider interface {
	Name() string
	Enabled() bool
	Lookup(ctx context.Context, target string) (GeoRecord, error)
}

// HTTPClient is an interface for the HTTP client providers use to
// access their services.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger defines an interface of the logger which is accepted by
// Aggregator. Lookup errors are provider-local and never abort a
// lookup, so logging is the only place where they surface.
type Logger interface {
	LookupError(target string, name string, err error)
}
