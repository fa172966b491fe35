package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"

	ratelimitmw "benefitscout/internal/ratelimit/middleware"
	"benefitscout/pkg/platform/httputil"
	authmw "benefitscout/pkg/platform/middleware/auth"
	"benefitscout/pkg/platform/middleware/metadata"
	"benefitscout/pkg/platform/middleware/request"
	"benefitscout/pkg/platform/middleware/requesttime"
)

// Registrar mounts routes that require an authenticated user.
type Registrar interface {
	Register(r chi.Router)
}

// PublicRegistrar mounts routes that accept anonymous callers.
type PublicRegistrar interface {
	RegisterPublic(r chi.Router)
}

// Config carries everything NewRouter wires together. Nil RateLimiter,
// Metrics and MetricsHandler disable those concerns.
type Config struct {
	Logger         *slog.Logger
	Tokens         authmw.TokenValidator
	RateLimiter    *ratelimitmw.Middleware
	Metrics        request.Observer
	MetricsHandler http.Handler
	Health         *Health
	RequestTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For; everyone else is identified by socket address.
	TrustedProxies []netip.Prefix

	Protected []Registrar
	Public    []PublicRegistrar
}

// NewRouter wires the middleware chain, operational endpoints and module routes.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(cfg.TrustedProxies))
	r.Use(request.Instrument(cfg.Metrics))
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Recovery(cfg.Logger))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.ServeHTTP)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(request.Timeout(cfg.RequestTimeout))
		}
		r.Use(request.RequireJSON)

		r.Group(func(r chi.Router) {
			r.Use(authmw.OptionalAuth(cfg.Tokens, cfg.Logger))
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.RateLimitByMethod())
			}
			for _, p := range cfg.Public {
				p.RegisterPublic(r)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(cfg.Tokens, cfg.Logger))
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.RateLimitByMethod())
			}
			for _, p := range cfg.Protected {
				p.Register(r)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})
	return r
}
