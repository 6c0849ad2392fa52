package api

import (
	"encoding/json"
	"net"
	"net/http"
)

func (h handler) ipIntelGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	target := r.URL.Query().Get("ip")
	if target != "" && net.ParseIP(target) == nil {
		h.abort(w, http.StatusNotAcceptable, "cannot parse "+target+" as IP")

		return
	}

	if target == "" {
		// No explicit target: resolve the caller's own address first,
		// then aggregate.
		target = h.selfIP.Resolve(ctx).Primary()
	}

	result, err := h.aggregator.Lookup(ctx, target)
	if err != nil {
		h.abortLookup(w, err)

		return
	}

	h.encodeJSON(w, result)
}

func (h handler) ipIntelPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestBody := ipIntelBulkRequestStruct{}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		h.abort(w, http.StatusNotAcceptable, err.Error())

		return
	}

	if len(requestBody.IPs) == 0 {
		h.abort(w, http.StatusNotAcceptable, "please provide ips to resolve")

		return
	}

	results, err := h.aggregator.LookupAll(ctx, requestBody.IPs)
	if err != nil {
		h.abortLookup(w, err)

		return
	}

	h.encodeJSON(w, ipIntelBulkResponseStruct{Results: results})
}
