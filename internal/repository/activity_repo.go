package repository

import (
	"context"
	"database/sql"
	"fmt"

	"verbatim/internal/models"
)

type ActivityRepository struct {
	db   *sql.DB
	bind Binder
}

func NewActivityRepository(db *sql.DB, bind Binder) *ActivityRepository {
	return &ActivityRepository{db: db, bind: bind}
}

var _ Activity = (*ActivityRepository)(nil)

const (
	insertActivitySQL = `INSERT INTO user_activities (email, action, occurred_at) VALUES (?, ?, ?)`

	selectRecentActivitySQL = `SELECT email, action, occurred_at FROM user_activities WHERE email = ? ORDER BY occurred_at DESC LIMIT ?`
)

func (r *ActivityRepository) Append(ctx context.Context, e models.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, r.bind(insertActivitySQL), e.Email, e.Action, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("append activity %q for %q: %w", e.Action, e.Email, err)
	}
	return nil
}

// ListRecent returns the newest activity entries recorded for an email.
func (r *ActivityRepository) ListRecent(ctx context.Context, email string, limit int) ([]models.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.bind(selectRecentActivitySQL), email, limit)
	if err != nil {
		return nil, fmt.Errorf("select activity for %q: %w", email, err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]models.ActivityEntry, 0, limit)
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.Email, &e.Action, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}
	return entries, nil
}
