package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAttendeeService(attendeeRepo *MockAttendeeRepo, deletionRepo *MockDeletionRepo, emailSvc service.EmailService) service.AttendeeService {
	return service.NewAttendeeService(attendeeRepo, deletionRepo, emailSvc, 0)
}

func TestAttendeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success assigns id and payload atomically", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendeeRepo.On("Create", ctx, mock.AnythingOfType("*domain.Attendee")).Return(nil)

		attendee, err := svc.Create(ctx, service.AttendeeInput{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Phone:    "5550001111",
			Role:     "vip",
			UserType: "student",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, attendee.ID)
		assert.Equal(t, domain.RoleVIP, attendee.Role)
		assert.Equal(t, domain.UserTypeCollegeStudent, attendee.UserType)

		var payload domain.QRPayload
		assert.NoError(t, json.Unmarshal([]byte(attendee.QRCodeData), &payload))
		assert.Equal(t, attendee.ID, payload.ID)
		assert.Equal(t, "Asha Rao", payload.Name)
		assert.Equal(t, domain.RoleVIP, payload.Role)
		attendeeRepo.AssertExpectations(t)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		_, err := svc.Create(ctx, service.AttendeeInput{Name: "", Email: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		attendeeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Store failure", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := svc.Create(ctx, service.AttendeeInput{Name: "A", Email: "a@x.com"})
		assert.ErrorIs(t, err, domain.ErrStoreWrite)
	})

	t.Run("Ticket email failure never fails the create", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		emailSvc := new(MockEmailService)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), emailSvc)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendTicket", ctx, "a@x.com", "A", mock.AnythingOfType("string")).Return(errors.New("smtp down"))

		attendee, err := svc.Create(ctx, service.AttendeeInput{Name: "A", Email: "a@x.com"})
		assert.NoError(t, err)
		assert.NotNil(t, attendee)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Empty phone gets the placeholder", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)

		attendee, err := svc.Create(ctx, service.AttendeeInput{Name: "A", Email: "a@x.com"})
		assert.NoError(t, err)
		assert.Equal(t, "0000000000", attendee.Phone)
	})
}

func TestAttendeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Payload reflects all new fields", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		existing := &domain.Attendee{ID: "id-1", Name: "Old", Email: "old@x.com", Phone: "1", Role: domain.RoleVIP, UserType: domain.UserTypeOther}
		attendeeRepo.On("GetByID", ctx, "id-1").Return(existing, nil)
		attendeeRepo.On("Update", ctx, mock.AnythingOfType("*domain.Attendee")).Return(nil)

		updated, err := svc.Update(ctx, "id-1", service.AttendeeInput{
			Name:     "New Name",
			Email:    "new@x.com",
			Phone:    "5550002222",
			Role:     "core",
			UserType: "faculty",
		})
		assert.NoError(t, err)
		assert.Equal(t, "id-1", updated.ID)

		var payload domain.QRPayload
		assert.NoError(t, json.Unmarshal([]byte(updated.QRCodeData), &payload))
		assert.Equal(t, "id-1", payload.ID)
		assert.Equal(t, "New Name", payload.Name)
		assert.Equal(t, "new@x.com", payload.Email)
		assert.Equal(t, "5550002222", payload.Phone)
		assert.Equal(t, domain.RoleCore, payload.Role)
		assert.Equal(t, domain.UserTypeCollegeFaculty, payload.UserType)
	})

	t.Run("Unknown id", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("GetByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", service.AttendeeInput{Name: "A", Email: "a@x.com"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAttendeeService_Delete(t *testing.T) {
	ctx := context.Background()
	notes := "front desk"
	attendee := &domain.Attendee{
		ID:    "id-9",
		Name:  "Del Me",
		Email: "del@x.com",
		Phone: "123",
		Role:  domain.RoleParticipants,
		DispatchLog: []domain.DispatchEvent{
			{ID: "ev-1", AttendeeID: "id-9", DispatchedBy: "B", Notes: &notes},
		},
	}

	t.Run("Backup then delete", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendeeRepo.On("GetByID", ctx, "id-9").Return(attendee, nil)
		var captured *domain.DeletionRecord
		deletionRepo.On("Create", ctx, mock.AnythingOfType("*domain.DeletionRecord")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.DeletionRecord) }).
			Return(nil)
		attendeeRepo.On("Delete", ctx, "id-9").Return(nil)

		snapshot, err := svc.Delete(ctx, "id-9", "Admin A", "duplicate entry")
		assert.NoError(t, err)
		assert.Equal(t, "id-9", snapshot.ID)

		assert.Equal(t, "id-9", captured.OriginalAttendeeID)
		assert.Equal(t, "Admin A", captured.DeletedBy)
		assert.Equal(t, "duplicate entry", captured.DeletionReason)
		assert.True(t, captured.HadDispatchRecords)

		var events []domain.DispatchEvent
		assert.NoError(t, json.Unmarshal([]byte(captured.DispatchRecords), &events))
		assert.Len(t, events, 1)
	})

	t.Run("Tombstone failure aborts with live row untouched", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendeeRepo.On("GetByID", ctx, "id-9").Return(attendee, nil)
		deletionRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.Delete(ctx, "id-9", "A", "r")
		assert.ErrorIs(t, err, domain.ErrBackupFailed)
		attendeeRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Failed live delete rolls the tombstone back", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendeeRepo.On("GetByID", ctx, "id-9").Return(attendee, nil)
		var recordID string
		deletionRepo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { recordID = args.Get(1).(*domain.DeletionRecord).ID }).
			Return(nil)
		attendeeRepo.On("Delete", ctx, "id-9").Return(errors.New("lock timeout"))
		deletionRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := svc.Delete(ctx, "id-9", "A", "r")
		assert.ErrorIs(t, err, domain.ErrStoreWrite)
		deletionRepo.AssertCalled(t, "Delete", ctx, recordID)
	})

	t.Run("Missing deleted_by and reason get defaults", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendeeRepo.On("GetByID", ctx, "id-9").Return(attendee, nil)
		var captured *domain.DeletionRecord
		deletionRepo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.DeletionRecord) }).
			Return(nil)
		attendeeRepo.On("Delete", ctx, "id-9").Return(nil)

		_, err := svc.Delete(ctx, "id-9", "", "")
		assert.NoError(t, err)
		assert.Equal(t, "Unknown", captured.DeletedBy)
		assert.Equal(t, "No reason provided", captured.DeletionReason)
	})
}

func TestAttendeeService_BulkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Per-row isolation with row-indexed errors", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)

		result := svc.BulkCreate(ctx, []service.AttendeeRow{
			{Name: "A", Email: "a@x.com", Role: "vip"},
			{Name: "", Email: "", Role: "core"},
		})
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "Row 2")
		assert.Len(t, result.Attendees, 1)
		assert.Equal(t, domain.RoleVIP, result.Attendees[0].Role)
	})

	t.Run("Defaults substituted for partial rows", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)

		result := svc.BulkCreate(ctx, []service.AttendeeRow{
			{Email: "solo@x.com"},
			{Name: "No Email"},
		})
		assert.True(t, result.Success)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, "Unknown", result.Attendees[0].Name)
		assert.Equal(t, "user1@example.com", result.Attendees[1].Email)
		assert.Equal(t, "0000000000", result.Attendees[0].Phone)
	})

	t.Run("Store failure on one row does not abort the batch", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Attendee) bool { return a.Name == "Bad" })).
			Return(errors.New("duplicate key"))
		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)

		result := svc.BulkCreate(ctx, []service.AttendeeRow{
			{Name: "Bad", Email: "bad@x.com"},
			{Name: "Good", Email: "good@x.com"},
		})
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0], "Row 1 (Bad)")
	})
}

func TestAttendeeService_BulkDeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports per-row failures", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		deletionRepo := new(MockDeletionRepo)
		svc := newAttendeeService(attendeeRepo, deletionRepo, nil)

		attendees := []domain.Attendee{
			{ID: "a-1", Name: "One", Email: "1@x.com"},
			{ID: "a-2", Name: "Two", Email: "2@x.com"},
		}
		attendeeRepo.On("ListWithDispatchLog", ctx).Return(attendees, nil)
		deletionRepo.On("Create", ctx, mock.Anything).Return(nil)
		attendeeRepo.On("Delete", ctx, "a-1").Return(nil)
		attendeeRepo.On("Delete", ctx, "a-2").Return(errors.New("lock timeout"))
		deletionRepo.On("Delete", ctx, mock.Anything).Return(nil)

		result, err := svc.BulkDeleteAll(ctx, "Admin", "event over")
		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.Deleted)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0], "Two")
	})

	t.Run("Nothing to delete", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("ListWithDispatchLog", ctx).Return([]domain.Attendee{}, nil)

		_, err := svc.BulkDeleteAll(ctx, "Admin", "r")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAttendeeService_FindByQRData(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("Create", ctx, mock.Anything).Return(nil)
		created, err := svc.Create(ctx, service.AttendeeInput{Name: "R", Email: "r@x.com"})
		assert.NoError(t, err)

		attendeeRepo.On("GetByQRData", ctx, created.QRCodeData).Return(created, nil)
		found, err := svc.FindByQRData(ctx, created.QRCodeData)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("Miss", func(t *testing.T) {
		attendeeRepo := new(MockAttendeeRepo)
		svc := newAttendeeService(attendeeRepo, new(MockDeletionRepo), nil)

		attendeeRepo.On("GetByQRData", ctx, "garbage").Return(nil, sql.ErrNoRows)

		_, err := svc.FindByQRData(ctx, "garbage")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
