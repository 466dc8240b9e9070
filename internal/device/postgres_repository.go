package device

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petagrampush/petagrampush/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL registration repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Upsert atomically inserts or replaces the registration for reg.UserID.
// A single conditional write, never read-then-write, so concurrent
// registrations for the same user cannot interleave.
func (r *PostgresRepository) Upsert(ctx context.Context, reg *Registration) error {
	query := `
		INSERT INTO devices (user_id, token, active, registered_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			token = EXCLUDED.token,
			active = TRUE,
			registered_at = EXCLUDED.registered_at
	`

	_, err := r.pool.Exec(ctx, query, reg.UserID, reg.Token, reg.Active, reg.RegisteredAt)
	if err != nil {
		return &database.OpError{Op: "device.upsert", Err: err}
	}
	return nil
}

// FindByUser retrieves the registration for a user.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (*Registration, error) {
	query := `
		SELECT user_id, token, active, registered_at
		FROM devices
		WHERE user_id = $1
	`

	var reg Registration
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&reg.UserID,
		&reg.Token,
		&reg.Active,
		&reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, &database.OpError{Op: "device.find", Err: err}
	}

	return &reg, nil
}

// ListActive retrieves all active registrations, newest first.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*Registration, error) {
	query := `
		SELECT user_id, token, active, registered_at
		FROM devices
		WHERE active
		ORDER BY registered_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
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

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
