package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/repository"
)

type deletionService struct {
	deletionRepo repository.DeletionRepository
}

func NewDeletionService(deletionRepo repository.DeletionRepository) DeletionService {
	return &deletionService{deletionRepo: deletionRepo}
}

// List returns tombstones newest first, optionally narrowed by a
// substring query over name, email, phone, college id, and operator.
func (s *deletionService) List(ctx context.Context, query string) ([]domain.DeletionRecord, error) {
	records, err := s.deletionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	if query == "" {
		return records, nil
	}

	filtered := make([]domain.DeletionRecord, 0, len(records))
	for _, r := range records {
		if r.Matches(query) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Purge removes a tombstone for good. Purging an id that is already gone
// reports NotFound; a repeated purge never faults the caller.
func (s *deletionService) Purge(ctx context.Context, id string) error {
	if err := s.deletionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: deletion record %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	logger.Info("deletion record purged", "deletion_record_id", id)
	return nil
}
