// control/router.go
// Author: momentics <momentics@gmail.com>
//
// Diagnostics HTTP surface: Prometheus scrape endpoint, probe dump, health.

package control

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter exposes gatherer on /metrics and probes on /debug/state.
func NewRouter(gatherer prometheus.Gatherer, probes *DebugProbes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	if probes != nil {
		r.Route("/debug", func(r chi.Router) {
			r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, probes.DumpState())
			})
			r.Get("/probes", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, probes.Names())
			})
		})
	}
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
