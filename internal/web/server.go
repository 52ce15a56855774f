// Package web provides the HTTP server and handlers for the table converter.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/TableConverter/internal/config"
	"github.com/JonMunkholm/TableConverter/internal/core"
	"github.com/JonMunkholm/TableConverter/internal/metrics"
	"github.com/JonMunkholm/TableConverter/internal/web/middleware"
	"github.com/JonMunkholm/TableConverter/internal/web/templates"
)

// rateLimitCleanupInterval is how often idle per-IP limiters are evicted.
const rateLimitCleanupInterval = time.Minute

// Server is the HTTP server for the converter.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	metrics  *metrics.Collector
	validate *validator.Validate
	limiter  *middleware.RateLimiter
	router   *chi.Mux
	server   *http.Server

	// background work started by Start ends when stop is called
	bgCtx context.Context
	stop  context.CancelFunc
}

// NewServer creates a Server. A nil collector disables request metrics and
// the metrics endpoint.
func NewServer(service *core.Service, cfg *config.Config, collector *metrics.Collector) *Server {
	s := &Server{
		service:  service,
		cfg:      cfg,
		metrics:  collector,
		validate: newValidator(),
		router:   chi.NewRouter(),
	}
	if cfg.Rate.Enabled {
		s.limiter = middleware.NewRateLimiter(cfg.Rate.RequestsPerMinute, cfg.Rate.Burst,
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
			}))
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	s.bgCtx, s.stop = context.WithCancel(context.Background())
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	if s.metrics != nil {
		s.router.Use(middleware.Metrics(s.metrics))
	}
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.Method(http.MethodGet, s.cfg.Metrics.Path, s.metrics.Handler())
	}

	s.router.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Handler)
		}

		r.Method(http.MethodGet, "/", templ.Handler(templates.Page(templates.PageData{
			MaxFiles:      s.cfg.Upload.MaxFiles,
			MaxFileSizeMB: s.cfg.Upload.MaxFileSize >> 20,
			PreviewRows:   s.cfg.Preview.Rows,
		})))
		r.Post("/preview", s.handlePreview)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(s.cfg.Security.RequireAPIKey, s.cfg.Security.APIKeys, s.respondError))
			r.Post("/process", s.handleProcess)
			r.Post("/export", s.handleExport)
			r.Post("/chart", s.handleChart)
		})
	})
}

// Start begins listening for HTTP requests. It returns
// http.ErrServerClosed after Shutdown. Start and Shutdown may be called from
// different goroutines.
func (s *Server) Start() error {
	if s.limiter != nil {
		go s.limiter.Cleanup(s.bgCtx, rateLimitCleanupInterval)
	}

	slog.Info("starting server", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		s.stop()
	}
	return err
}

// Shutdown gracefully stops the server. Calling it before Start makes a
// later Start return http.ErrServerClosed at once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
