package device

import (
	"context"
	"database/sql"
	"errors"

	"github.com/petagrampush/petagrampush/internal/database"
)

// SQLiteRepository is an embedded single-file implementation of Repository.
// Writes are serialized by the engine itself; callers see the same contract
// as the PostgreSQL implementation.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite registration repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert atomically inserts or replaces the registration for reg.UserID.
func (r *SQLiteRepository) Upsert(ctx context.Context, reg *Registration) error {
	query := `
		INSERT INTO devices (user_id, token, active, registered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			token = excluded.token,
			active = 1,
			registered_at = excluded.registered_at
	`

	_, err := r.db.ExecContext(ctx, query, reg.UserID, reg.Token, reg.Active, reg.RegisteredAt)
	if err != nil {
		return &database.OpError{Op: "device.upsert", Err: err}
	}
	return nil
}

// FindByUser retrieves the registration for a user.
func (r *SQLiteRepository) FindByUser(ctx context.Context, userID string) (*Registration, error) {
	query := `
		SELECT user_id, token, active, registered_at
		FROM devices
		WHERE user_id = ?
	`

	var reg Registration
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&reg.UserID,
		&reg.Token,
		&reg.Active,
		&reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, &database.OpError{Op: "device.find", Err: err}
	}

	return &reg, nil
}

// ListActive retrieves all active registrations, newest first.
func (r *SQLiteRepository) ListActive(ctx context.Context) ([]*Registration, error) {
	query := `
		SELECT user_id, token, active, registered_at
		FROM devices
		WHERE active = 1
		ORDER BY registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &database.OpError{Op: "device.list", Err: err}
	}
	defer rows.Close()

	var regs []*Registration
	for rows.Next() {
		var reg Registration
		err := rows.Scan(&reg.UserID, &reg.Token, &reg.Active, &reg.RegisteredAt)
		if err != nil {
			return nil, &database.OpError{Op: "device.list", Err: err}
		}
		regs = append(regs, &reg)
	}

	if err := rows.Err(); err != nil {
		return nil, &database.OpError{Op: "device.list", Err: err}
	}

	return regs, nil
}

// Ensure SQLiteRepository implements Repository interface.
var _ Repository = (*SQLiteRepository)(nil)
