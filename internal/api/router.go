package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Rubric/internal/broker"
	"github.com/MikeSquared-Agency/Rubric/internal/store"
)

// RouterConfig carries the server settings the handlers need.
type RouterConfig struct {
	AdminToken     string
	MaxUploadBytes int64
	// RateLimit is requests per minute per client; zero disables limiting.
	RateLimit int
}

func NewRouter(b *broker.Broker, s store.Store, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	if cfg.RateLimit > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimit, cfg.AdminToken))
	}

	grade := NewGradeHandler(b, cfg.MaxUploadBytes)
	reports := NewReportsHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/grade", grade.Grade)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/reports", reports.List)
			r.Get("/reports/{id}", reports.Get)
		})
	})

	return r
}

func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
