package api

import (
	"net/http"
)

func (h handler) localIP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	addrs := h.selfIP.Resolve(ctx)

	// The fan-out targets the primary detected address. When nothing
	// was detected the providers are still asked about the caller as
	// they see it, so the result set always has one entry per
	// provider.
	result, err := h.aggregator.Lookup(ctx, addrs.Primary())
	if err != nil {
		h.abortLookup(w, err)

		return
	}

	h.encodeJSON(w, localIPResponseStruct{
		IPv4:      addrs.IPv4,
		IPv6:      addrs.IPv6,
		Providers: result.Providers,
	})
}
