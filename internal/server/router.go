package server

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/solve", s.Solve)
	r.Post("/api/start", s.Start)
	r.Post("/api/stop", s.Stop)
	r.Get("/api/stream", s.Stream)
	r.Get("/api/export", s.Export)

	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(s.cfg.StaticDir, "index.html"))
	})
	r.Get("/help", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(s.cfg.StaticDir, "help.html"))
	})

	return r
}
