// Package main provides the entrypoint for the Petagram Push API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/petagrampush/petagrampush/internal/api"
	"github.com/petagrampush/petagrampush/internal/api/middleware"
	"github.com/petagrampush/petagrampush/internal/database"
	"github.com/petagrampush/petagrampush/internal/device"
	"github.com/petagrampush/petagrampush/internal/dispatch"
	"github.com/petagrampush/petagrampush/internal/instagram"
	"github.com/petagrampush/petagrampush/internal/like"
	"github.com/petagrampush/petagrampush/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "petagrampush-api"

	// Load .env for local development; ignored when absent
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Petagram Push API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Open storage; both engines expose the same repository interfaces so
	// everything past this switch is engine-agnostic
	storageCfg := database.StorageConfigFromEnv()

	var (
		deviceRepo  device.Repository
		likeRepo    like.Repository
		storagePing func(ctx context.Context) error
	)

	switch storageCfg.Engine {
	case database.EnginePostgres:
		pool, connectErr := database.Connect(ctx, storageCfg.Postgres)
		if connectErr != nil {
			log.Fatal().Err(connectErr).Msg("failed to connect to database")
		}
		defer pool.Close()

		if schemaErr := database.EnsurePostgresSchema(ctx, pool); schemaErr != nil {
			log.Fatal().Err(schemaErr).Msg("failed to ensure database schema")
		}

		deviceRepo = device.NewPostgresRepository(pool)
		likeRepo = like.NewPostgresRepository(pool)
		storagePing = pool.Ping

		log.Info().
			Str("engine", string(storageCfg.Engine)).
			Str("host", storageCfg.Postgres.Host).
			Int("port", storageCfg.Postgres.Port).
			Str("database", storageCfg.Postgres.Database).
			Msg("database connected")

	case database.EngineSQLite:
		db, openErr := database.OpenSQLite(ctx, storageCfg.SQLitePath)
		if openErr != nil {
			log.Fatal().Err(openErr).Msg("failed to open sqlite database")
		}
		defer db.Close()

		deviceRepo = device.NewSQLiteRepository(db)
		likeRepo = like.NewSQLiteRepository(db)
		storagePing = db.PingContext

		log.Info().
			Str("engine", string(storageCfg.Engine)).
			Str("path", storageCfg.SQLitePath).
			Msg("database opened")

	default:
		log.Fatal().Str("engine", string(storageCfg.Engine)).Msg("unknown storage engine")
	}

	// Initialize push sender (may be nil when FCM is not configured)
	var sender dispatch.Sender
	if credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsFile != "" {
		fcmSender, fcmErr := dispatch.NewFCMSender(ctx, credentialsFile)
		if fcmErr != nil {
			log.Warn().Err(fcmErr).Msg("push sender initialization failed - notifications will be skipped")
		} else {
			sender = fcmSender
			log.Info().Msg("push sender initialized")
		}
	} else {
		log.Warn().Msg("push sender not configured - notifications will be skipped")
	}

	dispatcher := dispatch.NewDispatcher(dispatch.DispatcherConfig{
		Sender: sender,
		Logger: log,
	})

	// Initialize Instagram forwarder; without an access token it stays in
	// simulated mode
	igClient := instagram.NewClient(instagram.ClientConfig{
		AccessToken:      os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
		EndpointTemplate: os.Getenv("IG_MEDIA_LIKES_ENDPOINT"),
		Logger:           log,
	})
	if igClient.Configured() {
		log.Info().Msg("instagram forwarder configured")
	} else {
		log.Warn().Msg("instagram forwarder not configured - forwarding runs in simulated mode")
	}

	// Initialize services
	deviceService := device.NewService(deviceRepo)
	log.Info().Msg("device service initialized")

	likeService := like.NewService(like.ServiceConfig{
		Repository: likeRepo,
		Devices:    deviceRepo,
		Dispatcher: dispatcher,
		Forwarder:  igClient,
		Logger:     log,
	})
	log.Info().Msg("like service initialized")

	var allowedOrigins []string
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		AllowedOrigins: allowedOrigins,
		DeviceService:  deviceService,
		LikeService:    likeService,
		StoragePing:    storagePing,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
