package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/repository"
)

type dispatchService struct {
	dispatchRepo repository.DispatchRepository
	attendeeRepo repository.AttendeeRepository
}

func NewDispatchService(dispatchRepo repository.DispatchRepository, attendeeRepo repository.AttendeeRepository) DispatchService {
	return &dispatchService{dispatchRepo: dispatchRepo, attendeeRepo: attendeeRepo}
}

// Record appends one hand-off event. A second scan of the same attendee
// produces a second event; callers warn about duplicates but nothing here
// blocks them. Attendee existence is enforced by the store's referential
// constraint.
func (s *dispatchService) Record(ctx context.Context, attendeeID, dispatchedBy, notes string) (*domain.DispatchEvent, error) {
	event := &domain.DispatchEvent{
		ID:           uuid.NewString(),
		AttendeeID:   attendeeID,
		DispatchedBy: dispatchedBy,
	}
	if notes != "" {
		event.Notes = &notes
	}

	if err := s.dispatchRepo.Create(ctx, event); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: attendee %s does not exist", domain.ErrStoreWrite, attendeeID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return event, nil
}

// ListDispatched returns attendees with at least one hand-off event,
// newest attendee first; each attendee appears exactly once however many
// events it has accumulated.
func (s *dispatchService) ListDispatched(ctx context.Context) ([]domain.Attendee, error) {
	attendees, err := s.attendeeRepo.ListWithDispatchLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}

	dispatched := make([]domain.Attendee, 0, len(attendees))
	for _, a := range attendees {
		if a.Dispatched() {
			dispatched = append(dispatched, a)
		}
	}
	return dispatched, nil
}
