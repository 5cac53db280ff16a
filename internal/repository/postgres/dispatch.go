package postgres

import (
	"context"
	"database/sql"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/repository"
)

type dispatchRepository struct {
	db *sql.DB
}

func NewDispatchRepository(db *sql.DB) repository.DispatchRepository {
	return &dispatchRepository{db: db}
}

// Create appends one hand-off event. Duplicate events for the same attendee
// are allowed; the store's foreign key rejects unknown attendee ids.
func (r *dispatchRepository) Create(ctx context.Context, e *domain.DispatchEvent) error {
	query := `INSERT INTO dispatch_log (id, user_id, dispatched_by, notes)
	          VALUES ($1, $2, $3, $4) RETURNING dispatched_at`
	return r.db.QueryRowContext(ctx, query, e.ID, e.AttendeeID, e.DispatchedBy, e.Notes).Scan(&e.DispatchedAt)
}

func (r *dispatchRepository) ListByAttendee(ctx context.Context, attendeeID string) ([]domain.DispatchEvent, error) {
	query := `SELECT id, user_id, dispatched_at, dispatched_by, notes FROM dispatch_log WHERE user_id = $1 ORDER BY dispatched_at DESC`
	rows, err := r.db.QueryContext(ctx, query, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.DispatchEvent
	for rows.Next() {
		var e domain.DispatchEvent
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.AttendeeID, &e.DispatchedAt, &e.DispatchedBy, &notes); err != nil {
			return nil, err
		}
		if notes.Valid {
			e.Notes = &notes.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *dispatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dispatch_log`).Scan(&count)
	return count, err
}
