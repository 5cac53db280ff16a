package repository

import (
	"context"
	"eventops-backend/internal/domain"
)

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	GetByID(ctx context.Context, id string) (*domain.Attendee, error)
	GetByQRData(ctx context.Context, qrData string) (*domain.Attendee, error)
	Update(ctx context.Context, attendee *domain.Attendee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Attendee, error)
	ListWithDispatchLog(ctx context.Context) ([]domain.Attendee, error)
	Count(ctx context.Context) (int, error)
	CountDispatched(ctx context.Context) (int, error)
}

type DispatchRepository interface {
	Create(ctx context.Context, event *domain.DispatchEvent) error
	ListByAttendee(ctx context.Context, attendeeID string) ([]domain.DispatchEvent, error)
	Count(ctx context.Context) (int, error)
}

type DeletionRepository interface {
	Create(ctx context.Context, record *domain.DeletionRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.DeletionRecord, error)
	Count(ctx context.Context) (int, error)
}
