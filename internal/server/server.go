package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/branding"
	"github.com/doorstephq/doorstep/internal/config"
	"github.com/doorstephq/doorstep/internal/copywriter"
	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/core/store"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/hashtag"
	"github.com/doorstephq/doorstep/internal/lookup"
	"github.com/doorstephq/doorstep/internal/observability"
	"github.com/doorstephq/doorstep/internal/photos"
	"github.com/doorstephq/doorstep/internal/server/handlers"
	servermw "github.com/doorstephq/doorstep/internal/server/middleware"
	"github.com/doorstephq/doorstep/internal/vision"
)

// Deps carries the services the HTTP surface is built from.
type Deps struct {
	Ledger   *session.Ledger
	Store    *store.Store
	Photos   *photos.Store
	Analyzer *vision.Analyzer
	Copy     *copywriter.Copywriter
	Lookup   *lookup.Service
	Hashtags *hashtag.Service
	Branding *branding.Registry
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	cfg      config.ServerConfig
	uploads  vision.UploadPolicy
	limiters *servermw.LimiterStore
}

// New creates a new HTTP server instance
func New(cfg *config.Config, deps Deps) *Server {
	r := chi.NewRouter()

	// Standard chi middleware
	r.Use(middleware.RealIP)

	// The editor frontend is served from a different origin, so CORS stays
	// wide open like the original deployment.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Our custom middleware in correct order (RequestID → Metrics → Recovery → Auth)
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestMetrics)
	r.Use(servermw.Recovery)
	if cfg.Auth.Enabled {
		r.Use(servermw.BasicAuth(servermw.BasicAuthConfig{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		}))
	}

	// Standardized error responses using centralized HandleError
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewNotFoundError("The requested resource was not found")
		HandleError(w, req, err)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		err := apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource")
		HandleError(w, req, err)
	})

	s := &Server{
		router: r,
		cfg:    cfg.Server,
		uploads: vision.UploadPolicy{
			MaxImageMB:   cfg.Vision.MaxImageMB,
			AllowedTypes: cfg.Vision.AllowedTypes,
		},
	}

	if cfg.Throttle.Enabled {
		s.limiters = servermw.NewLimiterStore(cfg.Throttle.RPS, cfg.Throttle.Burst)
	}

	// Ensure handlers use the centralized error responder
	handlers.SetHTTPErrorResponder(HandleError)

	s.registerRoutes(deps)

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	readTimeout := s.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 120 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 120 * time.Second
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	observability.ServerLogger.Info("Starting HTTP server",
		zap.String("host", s.cfg.Host),
		zap.Int("port", s.cfg.Port),
		zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	observability.ServerLogger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the server port for testing
func (s *Server) Port() int {
	return s.cfg.Port
}

// StartLimiterJanitor prunes idle per-client limiters until done closes.
func (s *Server) StartLimiterJanitor(done <-chan struct{}) {
	if s.limiters != nil {
		s.limiters.StartJanitor(done, 2*time.Minute)
	}
}
