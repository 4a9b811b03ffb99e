package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, 42, true, TokenAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TokenAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.True(t, claims.Staff)
}

func TestParseToken_WrongType(t *testing.T) {
	token, err := GenerateToken(secret, 1, false, TokenRefresh, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenAccess, token)
	assert.ErrorIs(t, err, ErrTokenType)
}

func TestParseToken_BadSecret(t *testing.T) {
	token, err := GenerateToken(secret, 1, false, TokenAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TokenAccess, token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(secret, 1, false, TokenAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TokenAccess, token)
	assert.Error(t, err)
}

func TestShouldRotateRefreshToken(t *testing.T) {
	assert.False(t, ShouldRotateRefreshToken(&Claims{}, time.Hour))
}
