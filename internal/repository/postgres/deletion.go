package postgres

import (
	"context"
	"database/sql"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/repository"
)

type deletionRepository struct {
	db *sql.DB
}

func NewDeletionRepository(db *sql.DB) repository.DeletionRepository {
	return &deletionRepository{db: db}
}

func (r *deletionRepository) Create(ctx context.Context, d *domain.DeletionRecord) error {
	query := `INSERT INTO deleted_users (id, original_user_id, user_name, user_email, user_phone, user_role, user_type, college_id, user_data, dispatch_records, deleted_by, deletion_reason, had_dispatch_records)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING deleted_at`
	return r.db.QueryRowContext(ctx, query,
		d.ID, d.OriginalAttendeeID, d.Name, d.Email, d.Phone, d.Role, d.UserType,
		d.CollegeID, d.AttendeeData, d.DispatchRecords, d.DeletedBy, d.DeletionReason, d.HadDispatchRecords,
	).Scan(&d.DeletedAt)
}

// Delete removes a tombstone, either as the explicit purge operation or as
// the compensating rollback when a live-row delete fails after backup.
func (r *deletionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deleted_users WHERE id = $1`, id)
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

func (r *deletionRepository) List(ctx context.Context) ([]domain.DeletionRecord, error) {
	query := `SELECT id, original_user_id, user_name, user_email, user_phone, user_role, user_type, COALESCE(college_id, ''), user_data, dispatch_records, deleted_by, deletion_reason, had_dispatch_records, deleted_at
	          FROM deleted_users ORDER BY deleted_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DeletionRecord
	for rows.Next() {
		var d domain.DeletionRecord
		if err := rows.Scan(
			&d.ID, &d.OriginalAttendeeID, &d.Name, &d.Email, &d.Phone, &d.Role, &d.UserType,
			&d.CollegeID, &d.AttendeeData, &d.DispatchRecords, &d.DeletedBy, &d.DeletionReason,
			&d.HadDispatchRecords, &d.DeletedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

func (r *deletionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deleted_users`).Scan(&count)
	return count, err
}
