// Package normalize maps free-form input onto the closed vocabulary the
// rest of the system understands. Human-authored spreadsheets and forms use
// inconsistent wording; this is the single chokepoint that guarantees
// downstream code only ever sees canonical enum values.
package normalize

import (
	"strings"

	"eventops-backend/internal/domain"
)

// FieldTag identifies which attendee field a spreadsheet column feeds.
type FieldTag string

const (
	FieldName      FieldTag = "name"
	FieldEmail     FieldTag = "email"
	FieldPhone     FieldTag = "phone"
	FieldRole      FieldTag = "role"
	FieldUserType  FieldTag = "user_type"
	FieldCollegeID FieldTag = "college_id"
	FieldUnmapped  FieldTag = "unmapped"
)

// Role maps a free-form role string onto the six canonical roles.
// Exact matches win first; then substring heuristics in a fixed order.
// VVIP must be checked before VIP: "VVIP" contains "vip" and would
// otherwise be misclassified.
func Role(raw string) domain.Role {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return domain.RoleParticipants
	}

	switch lower {
	case "vvip":
		return domain.RoleVVIP
	case "vip":
		return domain.RoleVIP
	case "core":
		return domain.RoleCore
	case "volunteer":
		return domain.RoleVolunteer
	case "participants", "participant":
		return domain.RoleParticipants
	case "college":
		return domain.RoleCollege
	}

	switch {
	case strings.Contains(lower, "vvip") ||
		(strings.Contains(lower, "very") && strings.Contains(lower, "vip")):
		return domain.RoleVVIP
	case strings.Contains(lower, "vip"):
		return domain.RoleVIP
	case strings.Contains(lower, "core"):
		return domain.RoleCore
	case strings.Contains(lower, "volunteer"):
		return domain.RoleVolunteer
	case strings.Contains(lower, "participant"):
		return domain.RoleParticipants
	case strings.Contains(lower, "college"),
		strings.Contains(lower, "student"),
		strings.Contains(lower, "faculty"):
		return domain.RoleCollege
	}

	return domain.RoleParticipants
}

// KnownRole reports whether the raw string resolves to a role through an
// exact or substring match rather than falling through to the default.
// The import pipeline uses this to tell "no role found" apart from
// "role found but unrecognized".
func KnownRole(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return false
	}
	for _, kw := range []string{"vvip", "vip", "core", "volunteer", "participant", "college", "student", "faculty"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return strings.Contains(lower, "very") && strings.Contains(lower, "vip")
}

// UserType maps a free-form user-type string onto the canonical enum.
func UserType(raw string) domain.UserType {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return domain.UserTypeOther
	}
	switch {
	case strings.Contains(lower, "student"):
		return domain.UserTypeCollegeStudent
	case strings.Contains(lower, "faculty"),
		strings.Contains(lower, "teacher"),
		strings.Contains(lower, "professor"):
		return domain.UserTypeCollegeFaculty
	}
	return domain.UserTypeOther
}

// DetectColumnField maps an arbitrary spreadsheet column header onto an
// attendee field by keyword containment, evaluated in a fixed priority
// order. The user-type check is guarded so that headers already matched
// as role ("user role") do not fire it. Unrecognized headers come back
// as FieldUnmapped and are kept as literal extra attributes on the row.
func DetectColumnField(header string) FieldTag {
	h := strings.ToLower(strings.TrimSpace(header))

	switch {
	case strings.Contains(h, "name"),
		strings.Contains(h, "student"),
		strings.Contains(h, "person"):
		return FieldName
	case strings.Contains(h, "email"), strings.Contains(h, "mail"):
		return FieldEmail
	case strings.Contains(h, "phone"),
		strings.Contains(h, "mobile"),
		strings.Contains(h, "contact"),
		strings.Contains(h, "number"):
		return FieldPhone
	case h == "role", h == "roles",
		strings.Contains(h, "position"),
		strings.Contains(h, "designation"),
		strings.Contains(h, "category"):
		return FieldRole
	case (strings.Contains(h, "type") || strings.Contains(h, "user")) && !strings.Contains(h, "role"):
		return FieldUserType
	case strings.Contains(h, "id"),
		strings.Contains(h, "registration"),
		strings.Contains(h, "reg"),
		strings.Contains(h, "roll"):
		return FieldCollegeID
	}
	return FieldUnmapped
}
