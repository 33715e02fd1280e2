// Package httpserver provides the HTTP/HTTPS server for snipsync.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/snipsync-go/internal/core/service"
	"github.com/yndnr/snipsync-go/internal/server/httpserver/handler"
	"github.com/yndnr/snipsync-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Engine handles snippet operations.
	Engine *service.Engine

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics serves the /metrics endpoint when set.
	Metrics *metric.Registry

	// AuthToken, when non-empty, is required as a bearer token on the
	// /v1/* endpoints.
	AuthToken string

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// GlobalRateLimit is the global rate limit per IP (requests/second).
	GlobalRateLimit int

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		GlobalRateLimit: 100,
		EnableAudit:     true,
	}
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.Engine, cfg.Logger)

	// Health endpoints carry a minimal chain, no auth or rate limit.
	healthChain := func(hh http.Handler) http.Handler {
		return Chain(hh, Recover(cfg.Logger), RequestID())
	}

	// Business endpoints get the full chain.
	// Order: Recover -> RequestID -> RateLimit -> CORS -> Auth -> Audit -> Handler
	businessChain := func(hh http.Handler) http.Handler {
		middlewares := []Middleware{Recover(cfg.Logger), RequestID()}
		if cfg.GlobalRateLimit > 0 {
			middlewares = append(middlewares, RateLimit(cfg.GlobalRateLimit))
		}
		middlewares = append(middlewares, CORS(cfg.CORSAllowedOrigins))
		middlewares = append(middlewares, BearerAuth(cfg.AuthToken))
		if cfg.EnableAudit {
			middlewares = append(middlewares, Audit(cfg.Logger))
		}
		return Chain(hh, middlewares...)
	}

	mux := http.NewServeMux()

	mux.Handle("GET /health", healthChain(h))
	mux.Handle("GET /ready", healthChain(h))

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", healthChain(cfg.Metrics.Handler()))
	}

	business := businessChain(h)

	// Snippet endpoints
	mux.Handle("GET /v1/snippets", business)
	mux.Handle("POST /v1/snippets", business)
	mux.Handle("GET /v1/snippets/{id}", business)
	mux.Handle("PUT /v1/snippets/{id}", business)
	mux.Handle("DELETE /v1/snippets/{id}", business)
	mux.Handle("GET /v1/snippets/{id}/versions", business)
	mux.Handle("POST /v1/snippets/{id}/restore", business)

	// Collection endpoints
	mux.Handle("GET /v1/export", business)
	mux.Handle("POST /v1/import", business)

	return mux
}
