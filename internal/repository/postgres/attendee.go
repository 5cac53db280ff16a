package postgres

import (
	"context"
	"database/sql"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/repository"
)

type attendeeRepository struct {
	db *sql.DB
}

func NewAttendeeRepository(db *sql.DB) repository.AttendeeRepository {
	return &attendeeRepository{db: db}
}

const attendeeColumns = `id, name, email, phone, role, user_type, college_id, qr_code_data, created_at, updated_at`

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `INSERT INTO users (id, name, email, phone, role, user_type, college_id, qr_code_data)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		a.ID, a.Name, a.Email, a.Phone, a.Role, a.UserType, a.CollegeID, a.QRCodeData,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM users WHERE id = $1`
	a, err := r.scanAttendee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadDispatchLog(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByQRData looks the attendee up by the stored payload string, compared
// verbatim. The payload is never parsed here.
func (r *attendeeRepository) GetByQRData(ctx context.Context, qrData string) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM users WHERE qr_code_data = $1`
	a, err := r.scanAttendee(r.db.QueryRowContext(ctx, query, qrData))
	if err != nil {
		return nil, err
	}
	if err := r.loadDispatchLog(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) Update(ctx context.Context, a *domain.Attendee) error {
	query := `UPDATE users SET name=$1, email=$2, phone=$3, role=$4, user_type=$5, college_id=$6, qr_code_data=$7, updated_at=now() WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		a.Name, a.Email, a.Phone, a.Role, a.UserType, a.CollegeID, a.QRCodeData, a.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the live row; dispatch_log rows go with it via the store's
// cascade. The caller is responsible for having written the tombstone first.
func (r *attendeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *attendeeRepository) List(ctx context.Context) ([]domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []domain.Attendee
	for rows.Next() {
		a, err := r.scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, *a)
	}
	return attendees, rows.Err()
}

// ListWithDispatchLog returns every attendee, newest created first, with
// dispatch events folded in newest first.
func (r *attendeeRepository) ListWithDispatchLog(ctx context.Context) ([]domain.Attendee, error) {
	logger.DatabaseCall("SELECT", "users LEFT JOIN dispatch_log")

	query := `SELECT u.id, u.name, u.email, u.phone, u.role, u.user_type, u.college_id, u.qr_code_data, u.created_at, u.updated_at,
	                 d.id, d.user_id, d.dispatched_at, d.dispatched_by, d.notes
	          FROM users u
	          LEFT JOIN dispatch_log d ON u.id = d.user_id
	          ORDER BY u.created_at DESC, d.dispatched_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var attendees []domain.Attendee
	index := make(map[string]int)
	for rows.Next() {
		var a domain.Attendee
		var collegeID sql.NullString
		var eventID, eventAttendee, eventBy, eventNotes sql.NullString
		var eventAt sql.NullTime

		err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.Role, &a.UserType, &collegeID, &a.QRCodeData, &a.CreatedAt, &a.UpdatedAt,
			&eventID, &eventAttendee, &eventAt, &eventBy, &eventNotes,
		)
		if err != nil {
			logger.DatabaseResult("SELECT", int64(len(attendees)), err)
			return nil, err
		}
		if collegeID.Valid {
			a.CollegeID = &collegeID.String
		}

		i, seen := index[a.ID]
		if !seen {
			attendees = append(attendees, a)
			i = len(attendees) - 1
			index[a.ID] = i
		}
		if eventID.Valid {
			event := domain.DispatchEvent{
				ID:           eventID.String,
				AttendeeID:   eventAttendee.String,
				DispatchedAt: eventAt.Time,
				DispatchedBy: eventBy.String,
			}
			if eventNotes.Valid {
				event.Notes = &eventNotes.String
			}
			attendees[i].DispatchLog = append(attendees[i].DispatchLog, event)
		}
	}

	logger.DatabaseResult("SELECT", int64(len(attendees)), rows.Err())
	return attendees, rows.Err()
}

func (r *attendeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *attendeeRepository) CountDispatched(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT user_id) FROM dispatch_log`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *attendeeRepository) scanAttendee(row rowScanner) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var collegeID sql.NullString
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Role, &a.UserType, &collegeID, &a.QRCodeData, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if collegeID.Valid {
		a.CollegeID = &collegeID.String
	}
	return a, nil
}

func (r *attendeeRepository) loadDispatchLog(ctx context.Context, a *domain.Attendee) error {
	query := `SELECT id, user_id, dispatched_at, dispatched_by, notes FROM dispatch_log WHERE user_id = $1 ORDER BY dispatched_at DESC`
	rows, err := r.db.QueryContext(ctx, query, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var event domain.DispatchEvent
		var notes sql.NullString
		if err := rows.Scan(&event.ID, &event.AttendeeID, &event.DispatchedAt, &event.DispatchedBy, &notes); err != nil {
			return err
		}
		if notes.Valid {
			event.Notes = &notes.String
		}
		a.DispatchLog = append(a.DispatchLog, event)
	}
	return rows.Err()
}
