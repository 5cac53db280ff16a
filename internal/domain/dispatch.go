package domain

import "time"

// DispatchEvent is one append-only record of a physical hand-off.
// An attendee may accumulate several events; the system never rejects a
// duplicate dispatch, callers surface a warning instead.
type DispatchEvent struct {
	ID           string    `json:"id"`
	AttendeeID   string    `json:"attendee_id"`
	DispatchedAt time.Time `json:"dispatched_at"`
	DispatchedBy string    `json:"dispatched_by"`
	Notes        *string   `json:"notes"`
}
