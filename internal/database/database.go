// Package database provides storage engine connection management.
//
// Two engines are supported behind the same repository contracts: an embedded
// single-file SQLite store and a networked PostgreSQL store. The engine is
// chosen once at startup; business code only ever sees the repository
// interfaces in the feature packages.
package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Engine identifies a storage engine implementation.
type Engine string

const (
	// EngineSQLite is the embedded single-file store.
	EngineSQLite Engine = "sqlite"
	// EnginePostgres is the networked relational store.
	EnginePostgres Engine = "postgres"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// StorageConfig selects the storage engine and carries its settings.
type StorageConfig struct {
	Engine     Engine
	SQLitePath string
	Postgres   Config
}

// StorageConfigFromEnv creates a StorageConfig from environment variables.
// DB_ENGINE selects the engine ("sqlite" or "postgres"); sqlite is the
// default so a fresh checkout runs without a database server.
func StorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Engine:     Engine(getEnvOrDefault("DB_ENGINE", string(EngineSQLite))),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "petagram.db"),
		Postgres:   ConfigFromEnv(),
	}
}

// ConfigFromEnv creates a PostgreSQL Config from environment variables.
func ConfigFromEnv() Config {
	port, _ := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	maxOpen, _ := strconv.Atoi(getEnvOrDefault("DB_MAX_OPEN_CONNS", "10"))
	maxIdle, _ := strconv.Atoi(getEnvOrDefault("DB_MAX_IDLE_CONNS", "5"))
	lifetime, _ := time.ParseDuration(getEnvOrDefault("DB_CONN_MAX_LIFETIME", "5m"))

	return Config{
		Host:            getEnvOrDefault("DB_HOST", "localhost"),
		Port:            port,
		User:            getEnvOrDefault("DB_USER", "petagram"),
		Password:        getEnvOrDefault("DB_PASSWORD", "localdev"),
		Database:        getEnvOrDefault("DB_NAME", "petagram"),
		SSLMode:         getEnvOrDefault("DB_SSL_MODE", "disable"),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: lifetime,
	}
}

// ConnectionString returns the PostgreSQL connection string.
func (c Config) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// Connect creates a new PostgreSQL connection pool and verifies it.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns) //nolint:gosec // MaxOpenConns is bounded by config validation
	poolConfig.MinConns = int32(cfg.MaxIdleConns) //nolint:gosec // MaxIdleConns is bounded by config validation
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsurePostgresSchema creates the registration and like event tables if they
// do not exist. The layout matches the SQLite schema in sqlite.go.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS devices (
			user_id       TEXT PRIMARY KEY,
			token         TEXT NOT NULL,
			active        BOOLEAN NOT NULL DEFAULT TRUE,
			registered_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id            TEXT PRIMARY KEY,
			photo_id      TEXT NOT NULL,
			liker_user_id TEXT NOT NULL,
			device_token  TEXT,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return &OpError{Op: "schema.ensure", Err: err}
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
