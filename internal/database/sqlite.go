package database

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the cgo-free "sqlite" driver.
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) the embedded single-file store at path and
// ensures its schema. The handle is shared process-wide: opened once at
// startup, closed once at shutdown.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// SQLite serializes writers; a single connection sidesteps SQLITE_BUSY
	// under concurrent request handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	return db, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS devices (
			user_id       TEXT PRIMARY KEY,
			token         TEXT NOT NULL,
			active        INTEGER NOT NULL DEFAULT 1,
			registered_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id            TEXT PRIMARY KEY,
			photo_id      TEXT NOT NULL,
			liker_user_id TEXT NOT NULL,
			device_token  TEXT,
			created_at    TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return &OpError{Op: "schema.ensure", Err: err}
		}
	}
	return nil
}
