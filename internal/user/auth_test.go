package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	token, err := GenerateJWT(42, "john", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "john", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestGenerateJWT_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT(1, "john", "user")
	assert.Error(t, err)
}

func TestParseJWT_Tampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	token, err := GenerateJWT(1, "john", "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "othersecret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
