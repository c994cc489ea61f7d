package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/handler"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/middleware"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	FundsHandler     *handler.FundsHandler
	OrderHandler     *handler.OrderHandler
	PortfolioHandler *handler.PortfolioHandler
	AuditHandler     *handler.AuditHandler
	ClockHandler     *handler.ClockHandler
	AuthHandler      *handler.AuthHandler
	EntityHandler    *handler.EntityHandler
	HealthHandler    *handler.HealthHandler

	SessionMiddleware *middleware.SessionMiddleware
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

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.SessionMiddleware != nil {
			r.Use(cfg.SessionMiddleware.Wrap)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
			r.Get("/session", cfg.AuthHandler.Session)
		})

		// Funds
		r.Route("/funds", func(r chi.Router) {
			r.Post("/", cfg.FundsHandler.Add)
			r.Post("/withdraw", cfg.FundsHandler.Withdraw)
		})
		r.Get("/balances", cfg.FundsHandler.Balances)
		r.Get("/ledger", cfg.FundsHandler.Ledger)

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Post("/{id}/approve", cfg.OrderHandler.Approve)
			r.Post("/{id}/reject", cfg.OrderHandler.Reject)
		})

		// Portfolio and audit
		r.Get("/portfolio", cfg.PortfolioHandler.Summary)
		r.Get("/audit", cfg.AuditHandler.List)

		// Clock and settlement engine
		r.Route("/clock", func(r chi.Router) {
			r.Get("/", cfg.ClockHandler.Current)
			r.Post("/advance", cfg.ClockHandler.Advance)
		})
		r.Post("/settlement/run", cfg.ClockHandler.RunSettlement)

		// Entities
		r.Get("/entities", cfg.EntityHandler.List)
	})

	return r
}
