package like

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petagrampush/petagrampush/internal/database"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL like event repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Record appends a like event.
func (r *PostgresRepository) Record(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO likes (id, photo_id, liker_user_id, device_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.PhotoID,
		event.LikerUserID,
		event.Token,
		event.CreatedAt,
	)
	if err != nil {
		return &database.OpError{Op: "like.record", Err: err}
	}
	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
