package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventops-backend/internal/logger"
	"eventops-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	adminPasswordHash []byte
	tokenManager      security.TokenManager
}

// NewAuthService takes the bcrypt hash of the admin credential as an
// injected dependency; the application never holds the plain password.
func NewAuthService(adminPasswordHash string, tokenManager security.TokenManager) AuthService {
	return &authService{
		adminPasswordHash: []byte(adminPasswordHash),
		tokenManager:      tokenManager,
	}
}

// Login checks the supplied password against the injected hash and, on
// success, issues a session token carrying the operator name for audit
// fields downstream.
func (s *authService) Login(ctx context.Context, operator, password string) (string, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		operator = "Unknown"
	}

	if err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password)); err != nil {
		logger.Warn("login rejected", "operator", operator)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateSessionToken(operator)
	if err != nil {
		return "", err
	}
	logger.Info("operator logged in", "operator", operator)
	return token, nil
}
