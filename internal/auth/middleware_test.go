package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportpilot/internal/models"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{Username: "admin"}
	user.ID = 3

	tokenString, err := GenerateToken(secret, user)
	require.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestGenerateTokenWrongSecretRejected(t *testing.T) {
	user := &models.User{Username: "admin"}
	tokenString, err := GenerateToken([]byte("secret-a"), user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}
