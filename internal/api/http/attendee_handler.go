package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"eventops-backend/internal/service"
)

type AttendeeHandler struct {
	svc       service.AttendeeService
	importSvc service.ImportService
	validate  *validator.Validate
}

func NewAttendeeHandler(svc service.AttendeeService, importSvc service.ImportService) *AttendeeHandler {
	return &AttendeeHandler{
		svc:       svc,
		importSvc: importSvc,
		validate:  validator.New(),
	}
}

type attendeeRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	UserType  string `json:"user_type"`
	CollegeID string `json:"college_id"`
}

type deleteRequest struct {
	DeletedBy string `json:"deleted_by"`
	Reason    string `json:"reason"`
}

type lookupRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

type bulkRowRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      string            `json:"role"`
	UserType  string            `json:"user_type"`
	CollegeID string            `json:"college_id"`
	Extra     map[string]string `json:"extra"`
}

type bulkCreateRequest struct {
	Attendees []bulkRowRequest `json:"attendees" validate:"required,min=1"`
}

type importRequest struct {
	Headers []string   `json:"headers" validate:"required,min=1"`
	Rows    [][]string `json:"rows" validate:"required,min=1"`
}

func (h *AttendeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req attendeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "name and a valid email are required")
		return
	}

	attendee, err := h.svc.Create(r.Context(), toInput(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"attendee": attendee})
}

func (h *AttendeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req attendeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "name and a valid email are required")
		return
	}

	attendee, err := h.svc.Update(r.Context(), id, toInput(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"attendee": attendee})
}

func (h *AttendeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req deleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DeletedBy == "" {
		req.DeletedBy = OperatorFromContext(r.Context())
	}

	deleted, err := h.svc.Delete(r.Context(), id, req.DeletedBy, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"deleted_attendee": deleted})
}

func (h *AttendeeHandler) List(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"attendees": attendees})
}

func (h *AttendeeHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "at least one attendee row is required")
		return
	}

	rows := make([]service.AttendeeRow, len(req.Attendees))
	for i, row := range req.Attendees {
		rows[i] = service.AttendeeRow{
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Role:      row.Role,
			UserType:  row.UserType,
			CollegeID: row.CollegeID,
			Extra:     row.Extra,
		}
	}

	result := h.svc.BulkCreate(r.Context(), rows)
	respond(w, http.StatusOK, envelope{
		"success":   result.Success,
		"created":   result.Created,
		"failed":    result.Failed,
		"errors":    result.Errors,
		"attendees": result.Attendees,
	})
}

func (h *AttendeeHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "headers and at least one data row are required")
		return
	}

	result := h.importSvc.Import(r.Context(), req.Headers, req.Rows)
	respond(w, http.StatusOK, envelope{
		"success":   result.Success,
		"created":   result.Created,
		"failed":    result.Failed,
		"errors":    result.Errors,
		"attendees": result.Attendees,
	})
}

func (h *AttendeeHandler) BulkDeleteAll(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DeletedBy == "" {
		req.DeletedBy = OperatorFromContext(r.Context())
	}

	result, err := h.svc.BulkDeleteAll(r.Context(), req.DeletedBy, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": result.Success,
		"deleted": result.Deleted,
		"failed":  result.Failed,
		"errors":  result.Errors,
	})
}

// Lookup resolves a scanned QR payload to its attendee, dispatch history
// included, for the checking and dispatch stations.
func (h *AttendeeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "qr_data is required")
		return
	}

	attendee, err := h.svc.FindByQRData(r.Context(), req.QRData)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"attendee": attendee})
}

func toInput(req attendeeRequest) service.AttendeeInput {
	return service.AttendeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		UserType:  req.UserType,
		CollegeID: req.CollegeID,
	}
}
