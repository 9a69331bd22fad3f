package inspector

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the inspector's HTTP routes. A nil gatherer leaves
// /metrics unrouted.
func (in *Inspector) Handler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/roots", in.handleRoots)
	r.Get("/roots/{id}", in.handleRoot)
	r.Get("/roots/{id}/html", in.handleRootHTML)
	r.Get("/ws", in.hub.HandleWebSocket)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (in *Inspector) handleRoots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, in.Roots())
}

func (in *Inspector) handleRoot(w http.ResponseWriter, r *http.Request) {
	snap, ok := in.Root(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "root not found"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (in *Inspector) handleRootHTML(w http.ResponseWriter, r *http.Request) {
	snap, ok := in.Root(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(snap.HTML))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
