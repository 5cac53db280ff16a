package http

import (
	"context"
	"net/http"
	"strings"

	"eventops-backend/internal/security"
)

type contextKey string

const operatorKey contextKey = "operator"

// AuthMiddleware validates the bearer session token and injects the
// operator name into the request context for audit fields downstream.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, security.ErrInvalidToken)
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokenManager.ValidateToken(token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, claims.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext returns the operator name set by AuthMiddleware,
// or "Unknown" outside an authenticated request.
func OperatorFromContext(ctx context.Context) string {
	if operator, ok := ctx.Value(operatorKey).(string); ok && operator != "" {
		return operator
	}
	return "Unknown"
}
