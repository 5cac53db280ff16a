package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/normalize"
	"eventops-backend/internal/repository"
)

const (
	placeholderPhone = "0000000000"
	placeholderName  = "Unknown"
)

type attendeeService struct {
	attendeeRepo repository.AttendeeRepository
	deletionRepo repository.DeletionRepository
	emailSvc     EmailService
	rowDelay     time.Duration
}

// NewAttendeeService wires the attendee lifecycle. emailSvc may be nil;
// ticket delivery is best-effort and never fails a create.
func NewAttendeeService(
	attendeeRepo repository.AttendeeRepository,
	deletionRepo repository.DeletionRepository,
	emailSvc EmailService,
	rowDelay time.Duration,
) AttendeeService {
	return &attendeeService{
		attendeeRepo: attendeeRepo,
		deletionRepo: deletionRepo,
		emailSvc:     emailSvc,
		rowDelay:     rowDelay,
	}
}

// Create validates and normalizes the input, assigns the attendee id up
// front, and writes the row with its finished QR payload in one insert.
// The payload therefore self-describes the row id from the first moment
// the row exists.
func (s *attendeeService) Create(ctx context.Context, input AttendeeInput) (*domain.Attendee, error) {
	a, err := s.buildAttendee(input)
	if err != nil {
		return nil, err
	}

	if err := s.attendeeRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	s.sendTicket(ctx, a)
	return a, nil
}

// Update normalizes the new fields, recomputes the QR payload from the
// full merged field set, and writes both in one update call.
func (s *attendeeService) Update(ctx context.Context, id string, input AttendeeInput) (*domain.Attendee, error) {
	existing, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: attendee %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}

	a, err := s.buildAttendee(input)
	if err != nil {
		return nil, err
	}
	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt
	if err := a.BuildQRCodeData(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.attendeeRepo.Update(ctx, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: attendee %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return a, nil
}

// Delete runs the two-phase compensating sequence: snapshot the row and
// its dispatch history into a tombstone, then remove the live row. A
// failed tombstone write aborts with the live row untouched. A failed
// live delete rolls the just-written tombstone back, so an archive entry
// never exists for a row that is still live.
func (s *attendeeService) Delete(ctx context.Context, id, deletedBy, reason string) (*domain.Attendee, error) {
	a, err := s.attendeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: attendee %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}

	if err := s.deleteWithBackup(ctx, a, deletedBy, reason); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *attendeeService) deleteWithBackup(ctx context.Context, a *domain.Attendee, deletedBy, reason string) error {
	record, err := buildDeletionRecord(a, deletedBy, reason)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}

	if err := s.deletionRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}

	if err := s.attendeeRepo.Delete(ctx, a.ID); err != nil {
		// Roll the tombstone back rather than leave an archive entry
		// for a row that still exists.
		if rbErr := s.deletionRepo.Delete(ctx, record.ID); rbErr != nil {
			logger.Error("failed to roll back tombstone after delete failure",
				"deletion_record_id", record.ID, "attendee_id", a.ID, "error", rbErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

// BulkCreate inserts rows strictly one at a time, normalizing each
// independently. One row's failure never aborts the batch; it is recorded
// and processing moves on. A short sleep between rows bounds load on the
// shared store.
func (s *attendeeService) BulkCreate(ctx context.Context, rows []AttendeeRow) *domain.BulkCreateResult {
	result := &domain.BulkCreateResult{Success: true, Errors: []string{}, Attendees: []domain.Attendee{}}

	for i, row := range rows {
		a, err := s.normalizeBulkRow(row, i)
		if err == nil {
			err = s.attendeeRepo.Create(ctx, a)
			if err != nil {
				err = fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
			}
		}

		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d (%s): %v", i+1, row.Name, err))
			logger.Warn("bulk create row failed", "row", i+1, "name", row.Name, "error", err)
		} else {
			result.Created++
			result.Attendees = append(result.Attendees, *a)
		}

		if s.rowDelay > 0 && i < len(rows)-1 {
			time.Sleep(s.rowDelay)
		}
	}

	if result.Failed > 0 {
		result.Success = false
	}
	logger.Info("bulk create finished", "created", result.Created, "failed", result.Failed)
	return result
}

// BulkDeleteAll applies the same backup-then-delete sequence to every
// attendee, one row at a time. The operation succeeds only when zero
// rows failed.
func (s *attendeeService) BulkDeleteAll(ctx context.Context, deletedBy, reason string) (*domain.BulkDeleteResult, error) {
	attendees, err := s.attendeeRepo.ListWithDispatchLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("%w: no attendees to delete", domain.ErrNotFound)
	}

	result := &domain.BulkDeleteResult{Success: true, Errors: []string{}}
	for i := range attendees {
		a := &attendees[i]
		if err := s.deleteWithBackup(ctx, a, deletedBy, reason); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s (%s): %v", a.Name, a.ID, err))
			logger.Warn("bulk delete row failed", "attendee_id", a.ID, "error", err)
		} else {
			result.Deleted++
		}

		if s.rowDelay > 0 && i < len(attendees)-1 {
			time.Sleep(s.rowDelay)
		}
	}

	if result.Failed > 0 {
		result.Success = false
	}
	logger.Info("bulk delete finished", "deleted", result.Deleted, "failed", result.Failed)
	return result, nil
}

// FindByQRData resolves a scanned payload to its attendee. The stored
// payload string is compared verbatim; the scan result is never parsed.
func (s *attendeeService) FindByQRData(ctx context.Context, qrData string) (*domain.Attendee, error) {
	a, err := s.attendeeRepo.GetByQRData(ctx, qrData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no attendee for scanned code", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	return a, nil
}

func (s *attendeeService) List(ctx context.Context) ([]domain.Attendee, error) {
	attendees, err := s.attendeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	return attendees, nil
}

// buildAttendee validates a single-create input and produces a fully
// formed attendee with id and QR payload assigned.
func (s *attendeeService) buildAttendee(input AttendeeInput) (*domain.Attendee, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		phone = placeholderPhone
	}

	a := &domain.Attendee{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     normalize.Role(input.Role),
		UserType: normalize.UserType(input.UserType),
	}
	if collegeID := strings.TrimSpace(input.CollegeID); collegeID != "" {
		a.CollegeID = &collegeID
	}
	if err := a.BuildQRCodeData(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return a, nil
}

// normalizeBulkRow applies the bulk defaulting rules to one row. A row
// with neither name nor email cannot be identified and is rejected.
func (s *attendeeService) normalizeBulkRow(row AttendeeRow, index int) (*domain.Attendee, error) {
	name := strings.TrimSpace(row.Name)
	email := strings.TrimSpace(row.Email)
	if name == "" && email == "" {
		return nil, fmt.Errorf("%w: missing name or email", domain.ErrValidation)
	}
	if name == "" {
		name = placeholderName
	}
	if email == "" {
		email = fmt.Sprintf("user%d@example.com", index)
	}
	phone := strings.TrimSpace(row.Phone)
	if phone == "" {
		phone = placeholderPhone
	}

	a := &domain.Attendee{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     normalize.Role(row.Role),
		UserType: normalize.UserType(row.UserType),
	}
	if collegeID := strings.TrimSpace(row.CollegeID); collegeID != "" {
		a.CollegeID = &collegeID
	}
	if err := a.BuildQRCodeData(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return a, nil
}

func (s *attendeeService) sendTicket(ctx context.Context, a *domain.Attendee) {
	if s.emailSvc == nil {
		return
	}
	if err := s.emailSvc.SendTicket(ctx, a.Email, a.Name, a.QRCodeData); err != nil {
		logger.Warn("ticket email failed", "attendee_id", a.ID, "email", a.Email, "error", err)
	}
}

func buildDeletionRecord(a *domain.Attendee, deletedBy, reason string) (*domain.DeletionRecord, error) {
	if deletedBy == "" {
		deletedBy = "Unknown"
	}
	if reason == "" {
		reason = "No reason provided"
	}

	attendeeData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	events := a.DispatchLog
	if events == nil {
		events = []domain.DispatchEvent{}
	}
	dispatchRecords, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}

	collegeID := ""
	if a.CollegeID != nil {
		collegeID = *a.CollegeID
	}

	return &domain.DeletionRecord{
		ID:                 uuid.NewString(),
		OriginalAttendeeID: a.ID,
		Name:               a.Name,
		Email:              a.Email,
		Phone:              a.Phone,
		Role:               a.Role,
		UserType:           a.UserType,
		CollegeID:          collegeID,
		AttendeeData:       string(attendeeData),
		DispatchRecords:    string(dispatchRecords),
		DeletedBy:          deletedBy,
		DeletionReason:     reason,
		HadDispatchRecords: len(events) > 0,
	}, nil
}
