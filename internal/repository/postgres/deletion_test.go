package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/repository/postgres"
)

func TestDeletionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDeletionRepository(db)

	record := &domain.DeletionRecord{
		ID:                 "d-1",
		OriginalAttendeeID: "a-1",
		Name:               "Asha Rao",
		Email:              "asha@x.com",
		Phone:              "5550001111",
		Role:               domain.RoleVIP,
		UserType:           domain.UserTypeCollegeStudent,
		CollegeID:          "REG-7",
		AttendeeData:       `{"id":"a-1"}`,
		DispatchRecords:    `[]`,
		DeletedBy:          "Admin A",
		DeletionReason:     "duplicate entry",
		HadDispatchRecords: false,
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO deleted_users`).
		WithArgs(
			record.ID, record.OriginalAttendeeID, record.Name, record.Email, record.Phone,
			record.Role, record.UserType, record.CollegeID, record.AttendeeData,
			record.DispatchRecords, record.DeletedBy, record.DeletionReason, record.HadDispatchRecords,
		).
		WillReturnRows(sqlmock.NewRows([]string{"deleted_at"}).AddRow(now))

	err := repo.Create(context.Background(), record)
	assert.NoError(t, err)
	assert.Equal(t, now, record.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletionRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDeletionRepository(db)

	mock.ExpectExec(`DELETE FROM deleted_users WHERE id = \$1`).
		WithArgs("d-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "d-1"))

	mock.ExpectExec(`DELETE FROM deleted_users WHERE id = \$1`).
		WithArgs("d-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "d-1"), sql.ErrNoRows)
}

func TestDeletionRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewDeletionRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM deleted_users ORDER BY deleted_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "original_user_id", "user_name", "user_email", "user_phone", "user_role", "user_type",
			"college_id", "user_data", "dispatch_records", "deleted_by", "deletion_reason",
			"had_dispatch_records", "deleted_at",
		}).
			AddRow("d-2", "a-2", "Bela", "bela@y.com", "2", "core", "other", "", "{}", "[]", "Admin B", "cleanup", true, now).
			AddRow("d-1", "a-1", "Asha", "asha@x.com", "1", "vip", "college_student", "REG-7", "{}", "[]", "Admin A", "duplicate", false, now.Add(-time.Hour)))

	records, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "d-2", records[0].ID)
	assert.True(t, records[0].HadDispatchRecords)
	assert.Equal(t, "REG-7", records[1].CollegeID)
}
