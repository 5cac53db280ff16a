package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventops-backend/internal/domain"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/security"
	"eventops-backend/internal/service"
)

// envelope is the uniform response shape: {"success": bool, ...}. Every
// operation returns it; failures carry a human-readable "error" and never
// surface as an unhandled fault.
type envelope map[string]any

func respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	respond(w, http.StatusOK, body)
}

// respondError converts the error taxonomy into an HTTP status while
// keeping the envelope as the real contract.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		status = http.StatusUnauthorized
	}
	respond(w, status, envelope{"success": false, "error": err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respond(w, http.StatusBadRequest, envelope{"success": false, "error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body")
		return false
	}
	return true
}
