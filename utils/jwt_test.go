package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "abc123", "Admin")
	require.NoError(t, err)

	claim, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claim.ID)
	assert.Equal(t, "Admin", claim.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "abc123", "Admin")
	require.NoError(t, err)

	_, err = ValidateToken("other", token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ValidateToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, VerifyPassword(hash, "hunter2"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
}
