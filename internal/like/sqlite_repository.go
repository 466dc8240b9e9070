package like

import (
	"context"
	"database/sql"

	"github.com/petagrampush/petagrampush/internal/database"
)

// SQLiteRepository is an embedded single-file implementation of Repository.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite like event repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record appends a like event.
func (r *SQLiteRepository) Record(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO likes (id, photo_id, liker_user_id, device_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
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

// Ensure SQLiteRepository implements Repository interface.
var _ Repository = (*SQLiteRepository)(nil)
