package service

import (
	"context"
	"fmt"
	"strings"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/normalize"
)

type importService struct {
	attendeeSvc AttendeeService
}

// NewImportService builds the bulk import pipeline on top of the attendee
// service. Spreadsheet parsing happens upstream; this stage owns the
// semantic normalization of already-parsed rows.
func NewImportService(attendeeSvc AttendeeService) ImportService {
	return &importService{attendeeSvc: attendeeSvc}
}

// Import tags each column by header, normalizes every data row into an
// attendee candidate, applies the defaulting rules, rejects rows that
// still lack name or email, and hands the surviving batch to the
// sequential bulk insert. Row numbers in error messages count from the
// top of the sheet, header included.
func (s *importService) Import(ctx context.Context, headers []string, rows [][]string) *domain.BulkCreateResult {
	tags := make([]normalize.FieldTag, len(headers))
	for i, header := range headers {
		tags[i] = normalize.DetectColumnField(header)
	}
	logger.Debug("import column mapping resolved", "headers", headers, "columns", len(headers))

	var candidates []AttendeeRow
	rejected := []string{}

	for i, row := range rows {
		if emptyRow(row) {
			continue
		}
		rowNum := i + 2

		candidate := s.buildRow(headers, tags, row)
		s.applyDefaults(&candidate)

		if candidate.Name == "" || candidate.Email == "" {
			rejected = append(rejected, fmt.Sprintf("Row %d: missing name or email", rowNum))
			continue
		}
		candidates = append(candidates, candidate)
	}

	result := s.attendeeSvc.BulkCreate(ctx, candidates)
	if len(rejected) > 0 {
		result.Failed += len(rejected)
		result.Errors = append(rejected, result.Errors...)
		result.Success = false
	}
	return result
}

func (s *importService) buildRow(headers []string, tags []normalize.FieldTag, row []string) AttendeeRow {
	candidate := AttendeeRow{Extra: map[string]string{}}

	for j, tag := range tags {
		if j >= len(row) {
			break
		}
		value := strings.TrimSpace(row[j])
		if value == "" {
			continue
		}
		switch tag {
		case normalize.FieldName:
			candidate.Name = value
		case normalize.FieldEmail:
			candidate.Email = value
		case normalize.FieldPhone:
			candidate.Phone = value
		case normalize.FieldRole:
			candidate.Role = value
		case normalize.FieldUserType:
			candidate.UserType = value
		case normalize.FieldCollegeID:
			candidate.CollegeID = value
		default:
			// Unrecognized columns ride along under their original header.
			candidate.Extra[headers[j]] = value
		}
	}
	return candidate
}

// applyDefaults fills the gaps a spreadsheet row may leave. "No role
// found" and "role found but unrecognized" are distinct diagnostic paths
// even though both end up at the participants default.
func (s *importService) applyDefaults(candidate *AttendeeRow) {
	if candidate.Name == "" && candidate.Email != "" {
		candidate.Name = strings.SplitN(candidate.Email, "@", 2)[0]
	}

	if candidate.Role == "" {
		logger.Debug("no role found, defaulting to participants", "name", candidate.Name)
	} else if !normalize.KnownRole(candidate.Role) {
		logger.Debug("role not recognized, will default to participants", "name", candidate.Name, "role", candidate.Role)
	}

	if candidate.UserType == "" {
		if candidate.CollegeID != "" {
			candidate.UserType = string(domain.UserTypeCollegeStudent)
		} else {
			candidate.UserType = string(domain.UserTypeOther)
		}
	}

	if candidate.Phone == "" {
		candidate.Phone = placeholderPhone
	}
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
