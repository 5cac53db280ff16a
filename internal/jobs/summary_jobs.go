package jobs

import (
	"context"

	"eventops-backend/internal/logger"
)

// DispatchSummary logs the nightly operations report: how many attendees
// are registered, how many have been handed their items, how many hand-off
// events exist in total, and how many tombstones the archive holds.
func (jr *JobRunner) DispatchSummary() {
	jr.runWithRecovery("DispatchSummary", func() {
		ctx := context.Background()

		total, err := jr.store.AttendeeRepository.Count(ctx)
		if err != nil {
			logger.Error("dispatch summary: counting attendees failed", "error", err)
			return
		}
		dispatched, err := jr.store.AttendeeRepository.CountDispatched(ctx)
		if err != nil {
			logger.Error("dispatch summary: counting dispatched attendees failed", "error", err)
			return
		}
		events, err := jr.store.DispatchRepository.Count(ctx)
		if err != nil {
			logger.Error("dispatch summary: counting dispatch events failed", "error", err)
			return
		}
		tombstones, err := jr.store.DeletionRepository.Count(ctx)
		if err != nil {
			logger.Error("dispatch summary: counting deletion records failed", "error", err)
			return
		}

		pending := total - dispatched
		logger.Info("nightly dispatch summary",
			"attendees", total,
			"dispatched", dispatched,
			"pending", pending,
			"dispatch_events", events,
			"deletion_records", tombstones,
		)
	})
}
