package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test-agent", claims.UserAgent)
}

func TestParseToken_RejectsWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("signing-key"), 42, "")
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-key"), token)
	assert.Error(t, err)
}

func TestParseToken_RejectsOtherSigningMethods(t *testing.T) {
	key := []byte("signing-key")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 42,
	}

	// Same key, different HMAC algorithm. Only HS256 is accepted.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(key)
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.Error(t, err)
}
