package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"eventops-backend/internal/service"
)

type DispatchHandler struct {
	svc      service.DispatchService
	validate *validator.Validate
}

func NewDispatchHandler(svc service.DispatchService) *DispatchHandler {
	return &DispatchHandler{svc: svc, validate: validator.New()}
}

type dispatchRequest struct {
	AttendeeID   string `json:"attendee_id" validate:"required"`
	DispatchedBy string `json:"dispatched_by"`
	Notes        string `json:"notes"`
}

func (h *DispatchHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "attendee_id is required")
		return
	}
	if req.DispatchedBy == "" {
		req.DispatchedBy = OperatorFromContext(r.Context())
	}

	event, err := h.svc.Record(r.Context(), req.AttendeeID, req.DispatchedBy, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"dispatch": event})
}

func (h *DispatchHandler) List(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.ListDispatched(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"attendees": attendees})
}
