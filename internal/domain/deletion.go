package domain

import (
	"strings"
	"time"
)

// DeletionRecord is the tombstone written before an attendee row is removed.
// It carries denormalized identity fields for quick filtering plus full JSON
// snapshots of the row and its dispatch history. There is no foreign key back
// to the live table: a tombstone must outlive its source row.
type DeletionRecord struct {
	ID                 string    `json:"id"`
	OriginalAttendeeID string    `json:"original_attendee_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Role               Role      `json:"role"`
	UserType           UserType  `json:"user_type"`
	CollegeID          string    `json:"college_id"`
	AttendeeData       string    `json:"attendee_data"`
	DispatchRecords    string    `json:"dispatch_records"`
	DeletedBy          string    `json:"deleted_by"`
	DeletionReason     string    `json:"deletion_reason"`
	HadDispatchRecords bool      `json:"had_dispatch_records"`
	DeletedAt          time.Time `json:"deleted_at"`
}

// Matches reports whether the tombstone matches a case-insensitive substring
// query over name, email, phone, college id, or the deleting operator.
func (d *DeletionRecord) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{d.Name, d.Email, d.Phone, d.CollegeID, d.DeletedBy} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
