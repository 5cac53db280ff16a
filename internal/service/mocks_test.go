package service_test

import (
	"context"

	"eventops-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAttendeeRepo
type MockAttendeeRepo struct {
	mock.Mock
}

func (m *MockAttendeeRepo) Create(ctx context.Context, a *domain.Attendee) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAttendeeRepo) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendee), args.Error(1)
}
func (m *MockAttendeeRepo) GetByQRData(ctx context.Context, qrData string) (*domain.Attendee, error) {
	args := m.Called(ctx, qrData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendee), args.Error(1)
}
func (m *MockAttendeeRepo) Update(ctx context.Context, a *domain.Attendee) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAttendeeRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAttendeeRepo) List(ctx context.Context) ([]domain.Attendee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendee), args.Error(1)
}
func (m *MockAttendeeRepo) ListWithDispatchLog(ctx context.Context) ([]domain.Attendee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendee), args.Error(1)
}
func (m *MockAttendeeRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockAttendeeRepo) CountDispatched(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDispatchRepo
type MockDispatchRepo struct {
	mock.Mock
}

func (m *MockDispatchRepo) Create(ctx context.Context, e *domain.DispatchEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockDispatchRepo) ListByAttendee(ctx context.Context, attendeeID string) ([]domain.DispatchEvent, error) {
	args := m.Called(ctx, attendeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DispatchEvent), args.Error(1)
}
func (m *MockDispatchRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDeletionRepo
type MockDeletionRepo struct {
	mock.Mock
}

func (m *MockDeletionRepo) Create(ctx context.Context, d *domain.DeletionRecord) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeletionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDeletionRepo) List(ctx context.Context) ([]domain.DeletionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeletionRecord), args.Error(1)
}
func (m *MockDeletionRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTicket(ctx context.Context, toEmail, toName, qrData string) error {
	args := m.Called(ctx, toEmail, toName, qrData)
	return args.Error(0)
}
