package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"eventops-backend/internal/service"
)

type DeletionHandler struct {
	svc service.DeletionService
}

func NewDeletionHandler(svc service.DeletionService) *DeletionHandler {
	return &DeletionHandler{svc: svc}
}

func (h *DeletionHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"deleted_attendees": records})
}

func (h *DeletionHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Purge(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, nil)
}
