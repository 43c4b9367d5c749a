package server

import (
	"context"
	"os"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/appid"
	"github.com/doorstephq/doorstep/internal/observability"
	"github.com/doorstephq/doorstep/internal/server/handlers"
	servermw "github.com/doorstephq/doorstep/internal/server/middleware"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(deps Deps) {
	// Standard health endpoints
	s.router.Get("/health", handlers.HealthHandler)
	s.router.Get("/health/live", handlers.LivenessHandler)
	s.router.Get("/health/ready", handlers.ReadinessHandler)
	s.router.Get("/health/startup", handlers.StartupHandler)

	// Version endpoint
	s.router.Get("/version", handlers.VersionHandler)

	// Metrics endpoint (in server package to access HandleError)
	s.router.Get("/metrics", MetricsHandler)

	generate := &handlers.Generate{Copy: deps.Copy}
	analyze := &handlers.Analyze{Analyzer: deps.Analyzer, Policy: s.uploads}
	sessions := &handlers.Sessions{Ledger: deps.Ledger, Store: deps.Store, Photos: deps.Photos}
	lookups := &handlers.Lookup{Service: deps.Lookup}
	marketing := &handlers.Marketing{Hashtags: deps.Hashtags, Branding: deps.Branding}

	// Generation routes burn provider tokens, so they sit behind the
	// per-client throttle when one is configured.
	s.router.Group(func(r chi.Router) {
		if s.limiters != nil {
			r.Use(servermw.Throttle(s.limiters))
		}

		r.Post("/generate", generate.Listing)
		r.Post("/generate/room", generate.Room)
		r.Post("/refine-text", generate.Refine)
		r.Post("/generate-text-variant", generate.Variant)
		r.Post("/api/transform-text", generate.Transform)
		r.Post("/analyze-images", analyze.Images)
	})

	// Brochure sessions. Cleanup is registered before the {id} routes so
	// chi resolves the literal path first.
	s.router.Route("/api/brochure/session", func(r chi.Router) {
		r.Post("/", sessions.Create)
		r.Delete("/cleanup", sessions.Cleanup)
		r.Get("/{id}", sessions.Load)
		r.Put("/{id}", sessions.Update)
		r.Get("/{id}/photo/{photo_id}", sessions.Photo)
	})

	// UK property lookups
	s.router.Post("/postcode/autocomplete", lookups.Autocomplete)
	s.router.Post("/address/lookup", lookups.Addresses)

	// Marketing extras
	s.router.Post("/marketing/hashtags", marketing.GenerateHashtags)
	s.router.Route("/agencies", func(r chi.Router) {
		r.Get("/", marketing.ListAgencies)
		r.Get("/{id}", marketing.GetAgency)
		r.Get("/{id}/colors", marketing.AgencyColors)
		r.Post("/{id}/select-template", marketing.SelectTemplate)
	})

	// Admin signal endpoint (optional, requires DOORSTEP_ADMIN_TOKEN)
	s.registerAdminEndpoint()
}

// registerAdminEndpoint optionally registers the admin signal endpoint
func (s *Server) registerAdminEndpoint() {
	// Get admin token from environment (identity-aware)
	ctx := context.Background()
	identity, _ := appid.Get(ctx)
	envPrefix := "DOORSTEP_"
	if identity != nil && identity.EnvPrefix != "" {
		envPrefix = identity.EnvPrefix
	}

	adminToken := os.Getenv(envPrefix + "ADMIN_TOKEN")
	logger := observability.ServerLogger

	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no " + envPrefix + "ADMIN_TOKEN set)")
		}
		return
	}

	// Create HTTP signal handler with bearer token auth and rate limiting
	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10,  // 10 requests per minute
		RateBurst: 5,   // burst size
		Manager:   nil, // use default global manager
	})

	// Register admin endpoint
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("auth", "bearer token"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
