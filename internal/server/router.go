package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sevigo/mamba-review/internal/config"
	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/server/handler"
	"github.com/sevigo/mamba-review/internal/storage"
)

// NewRouter builds the insight receiver routes.
func NewRouter(cfg *config.Config, dispatcher core.InsightDispatcher, store storage.Store, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	insights := handler.NewInsightHandler(dispatcher, store, logger)
	r.Route("/insights", func(r chi.Router) {
		r.Use(handler.RequireBearer(cfg.Server.InsightToken))
		r.Post("/", insights.Receive)
		r.Get("/", insights.List)
	})

	return r
}
