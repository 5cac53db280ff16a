package service

import (
	"context"
	"eventops-backend/internal/domain"
)

// AttendeeInput is the field set accepted for a single create or update.
// Role and UserType are free-form and run through the normalizer.
type AttendeeInput struct {
	Name      string
	Email     string
	Phone     string
	Role      string
	UserType  string
	CollegeID string
}

// AttendeeRow is one bulk-import candidate: the fixed core field set plus
// an open-ended side map of extra attributes carried over from unmapped
// spreadsheet columns.
type AttendeeRow struct {
	Name      string
	Email     string
	Phone     string
	Role      string
	UserType  string
	CollegeID string
	Extra     map[string]string
}

type AttendeeService interface {
	Create(ctx context.Context, input AttendeeInput) (*domain.Attendee, error)
	Update(ctx context.Context, id string, input AttendeeInput) (*domain.Attendee, error)
	Delete(ctx context.Context, id, deletedBy, reason string) (*domain.Attendee, error)
	BulkCreate(ctx context.Context, rows []AttendeeRow) *domain.BulkCreateResult
	BulkDeleteAll(ctx context.Context, deletedBy, reason string) (*domain.BulkDeleteResult, error)
	FindByQRData(ctx context.Context, qrData string) (*domain.Attendee, error)
	List(ctx context.Context) ([]domain.Attendee, error)
}

type DispatchService interface {
	Record(ctx context.Context, attendeeID, dispatchedBy, notes string) (*domain.DispatchEvent, error)
	ListDispatched(ctx context.Context) ([]domain.Attendee, error)
}

type DeletionService interface {
	List(ctx context.Context, query string) ([]domain.DeletionRecord, error)
	Purge(ctx context.Context, id string) error
}

type ImportService interface {
	Import(ctx context.Context, headers []string, rows [][]string) *domain.BulkCreateResult
}

type AuthService interface {
	Login(ctx context.Context, operator, password string) (string, error)
}

type EmailService interface {
	SendTicket(ctx context.Context, toEmail, toName, qrData string) error
}
