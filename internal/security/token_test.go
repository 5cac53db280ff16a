package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventops-backend/internal/security"
)

func TestTokenManager(t *testing.T) {
	manager := security.NewTokenManager("test-secret-key", 1)

	t.Run("Round trip preserves the operator", func(t *testing.T) {
		token, err := manager.GenerateSessionToken("Admin A")
		assert.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "Admin A", claims.Operator)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		other := security.NewTokenManager("different-secret", 1)
		token, err := other.GenerateSessionToken("Admin A")
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := security.NewTokenManager("test-secret-key", -1)
		token, err := expired.GenerateSessionToken("Admin A")
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})
}
