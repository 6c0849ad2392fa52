package api

import (
	"net"
	"net/http"
)

// forwardingHeaders is the subset of inbound headers which carries
// diagnostic meaning for proxy/CDN deployments.
var forwardingHeaders = []string{
	"x-forwarded-for",
	"x-real-ip",
	"cf-connecting-ip",
	"cf-ipcountry",
	"x-forwarded-proto",
	"via",
	"user-agent",
}

// ExtractForwardingHeaders returns the present forwarding/proxy
// headers keyed by their lowercase names. Absent headers are omitted,
// never represented as empty strings.
func ExtractForwardingHeaders(headers http.Header) map[string]string {
	rv := map[string]string{}

	for _, name := range forwardingHeaders {
		if value := headers.Get(name); value != "" {
			rv[name] = value
		}
	}

	return rv
}

func (h handler) requestMeta(w http.ResponseWriter, r *http.Request) {
	clientIP := r.RemoteAddr

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		clientIP = host
	}

	h.encodeJSON(w, requestMetaResponseStruct{
		ClientIP: clientIP,
		Headers:  ExtractForwardingHeaders(r.Header),
	})
}
