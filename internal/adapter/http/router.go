package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gopledge/internal/adapter/http/handler"
	"github.com/iho/gopledge/internal/adapter/http/middleware"
	"github.com/iho/gopledge/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	QuoteHandler    *handler.QuoteHandler
	FeeHandler      *handler.FeeHandler
	CampaignHandler *handler.CampaignHandler
	HealthHandler   *handler.HealthHandler

	Logger zerolog.Logger
	// Metrics and Gatherer are optional; /metrics is served only when
	// Gatherer is set.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// RateLimiter is optional and applies to /api/v1 only.
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Post("/quotes", cfg.QuoteHandler.Create)
		r.Get("/bounds", cfg.QuoteHandler.Bounds)
		r.Get("/fees", cfg.FeeHandler.Get)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/preview", cfg.CampaignHandler.Preview)
			r.Post("/outcome", cfg.CampaignHandler.Outcome)
		})
	})

	return r
}
