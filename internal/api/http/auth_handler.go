package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"eventops-backend/internal/service"
)

type AuthHandler struct {
	svc      service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc, validate: validator.New()}
}

type loginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondBadRequest(w, "password is required")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Operator, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, envelope{"token": token})
}
