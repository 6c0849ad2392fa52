package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/Yester03/ipinfotool/intellib"
)

type handler struct {
	aggregator *intellib.Aggregator
	selfIP     *intellib.SelfIPResolver
	log        zerolog.Logger
}

// MakeServer wires the HTTP front door. All endpoints answer JSON; a
// lookup with zero successful providers is still a success since "no
// data available" is data.
func MakeServer(aggregator *intellib.Aggregator,
	selfIP *intellib.SelfIPResolver,
	log zerolog.Logger) *chi.Mux {
	h := handler{
		aggregator: aggregator,
		selfIP:     selfIP,
		log:        log,
	}

	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))

	router.Get("/api/local_ip", h.localIP)
	router.Get("/api/ip_intel", h.ipIntelGet)
	router.Post("/api/ip_intel", h.ipIntelPost)
	router.Get("/api/request_meta", h.requestMeta)

	return router
}

func (h handler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Cannot write response")
	}
}

func (h handler) abort(w http.ResponseWriter, code int, message string) {
	msg, _ := json.Marshal(map[string]string{"error": message})
	http.Error(w, string(msg), code)
}

func (h handler) abortLookup(w http.ResponseWriter, err error) {
	if err == intellib.ErrAggregatorShutdown {
		h.abort(w, http.StatusServiceUnavailable, err.Error())

		return
	}

	h.abort(w, http.StatusInternalServerError, err.Error())
}
