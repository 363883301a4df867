package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-123", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateToken("user-123", "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateToken("user-123", "user")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("matkhau123")
	require.NoError(t, err)
	assert.NotEqual(t, "matkhau123", hash)

	assert.True(t, CheckPassword(hash, "matkhau123"))
	assert.False(t, CheckPassword(hash, "saimatkhau"))
}
