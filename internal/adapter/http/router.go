package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerbook/internal/adapter/http/handler"
	"github.com/iho/ledgerbook/internal/adapter/http/middleware"
	"github.com/iho/ledgerbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PartyHandler      *handler.PartyHandler
	LedgerItemHandler *handler.LedgerItemHandler
	SummaryHandler    *handler.SummaryHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Parties
		r.Route("/parties", func(r chi.Router) {
			r.Post("/", cfg.PartyHandler.Create)
			r.Get("/names", cfg.PartyHandler.Names)
			r.Get("/{id}", cfg.PartyHandler.Get)
			r.Get("/{id}/summary", cfg.SummaryHandler.Get)
			r.Get("/{id}/summaries", cfg.SummaryHandler.List)
		})

		// Ledger items
		r.Route("/ledger-items", func(r chi.Router) {
			r.Post("/", cfg.LedgerItemHandler.Create)
			r.Get("/", cfg.LedgerItemHandler.List)
			r.Get("/{id}", cfg.LedgerItemHandler.Get)
			r.Post("/{id}/line-items", cfg.LedgerItemHandler.AddLineItem)
			r.Put("/{id}/line-items/{lineItemID}", cfg.LedgerItemHandler.UpdateLineItem)
		})
	})

	return r
}
