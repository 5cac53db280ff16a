package domain

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleVIP          Role = "VIP"
	RoleVVIP         Role = "VVIP"
	RoleCore         Role = "Core"
	RoleVolunteer    Role = "volunteer"
	RoleParticipants Role = "participants"
	RoleCollege      Role = "college"
)

type UserType string

const (
	UserTypeCollegeStudent UserType = "college_student"
	UserTypeCollegeFaculty UserType = "college_faculty"
	UserTypeOther          UserType = "other"
)

// Attendee is a registered person bound to exactly one QR payload.
// QRCodeData holds the serialized payload; it must always reflect the
// current field values of the row.
type Attendee struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        Role            `json:"role"`
	UserType    UserType        `json:"user_type"`
	CollegeID   *string         `json:"college_id"`
	QRCodeData  string          `json:"qr_code_data"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DispatchLog []DispatchEvent `json:"dispatch_log,omitempty"` // Populated when needed
}

// QRPayload is the exact JSON object encoded into an attendee's QR code.
// This is the bit-exact contract between the QR encoder and FindByQRData:
// lookups compare the stored string verbatim, so the payload must be built
// through BuildQRCodeData and nowhere else.
type QRPayload struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Role      Role     `json:"role"`
	UserType  UserType `json:"user_type"`
	CollegeID *string  `json:"college_id"`
}

// BuildQRCodeData derives the canonical QR payload string from the
// attendee's current fields and stores it on the record.
func (a *Attendee) BuildQRCodeData() error {
	payload := QRPayload{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role,
		UserType:  a.UserType,
		CollegeID: a.CollegeID,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	a.QRCodeData = string(data)
	return nil
}

// Dispatched reports whether at least one hand-off event exists.
func (a *Attendee) Dispatched() bool {
	return len(a.DispatchLog) > 0
}

// BulkCreateResult aggregates a sequential bulk insert. Success is true
// only when no row failed; Errors are row-indexed, human-readable messages.
type BulkCreateResult struct {
	Success   bool       `json:"success"`
	Created   int        `json:"created"`
	Failed    int        `json:"failed"`
	Errors    []string   `json:"errors"`
	Attendees []Attendee `json:"attendees"`
}

// BulkDeleteResult aggregates a bulk backup-then-delete pass.
type BulkDeleteResult struct {
	Success bool     `json:"success"`
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
