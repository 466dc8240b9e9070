// Package api provides the HTTP API for Petagram Push.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api/handler"
	"github.com/petagrampush/petagrampush/internal/api/middleware"
	"github.com/petagrampush/petagrampush/internal/api/response"
	"github.com/petagrampush/petagrampush/internal/device"
	"github.com/petagrampush/petagrampush/internal/like"
	"github.com/petagrampush/petagrampush/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	DeviceService  *device.Service
	LikeService    *like.Service

	// StoragePing checks storage reachability for the readiness endpoint.
	StoragePing func(ctx context.Context) error
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "petagrampush-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}
	r.Use(middleware.ContentTypeJSON) // JSON content type

	// Unknown paths answer with the same problem+json surface as errors
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "resource not found")
	})

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.StoragePing, resilience.GlobalRegistry)
	deviceHandler := handler.NewDeviceHandler(cfg.DeviceService, cfg.Logger)
	likeHandler := handler.NewLikeHandler(cfg.LikeService, cfg.Logger)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Device registrations - standard rate limiting
		r.Route("/devices", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", deviceHandler.ListDevices)
			r.Post("/", deviceHandler.RegisterDevice)
		})

		// Local likes - standard rate limiting
		r.With(standardRateLimit).Post("/likes", likeHandler.SubmitLike)

		// Forwarded likes hit an upstream provider - strict rate limiting
		r.With(expensiveRateLimit).Post("/instagram/likes", likeHandler.ForwardLike)
	})

	return r
}
