package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignVerifyRoundTrip(t *testing.T) {
	tok, err := Sign(testSecret, time.Hour, "user-1", true, "jti-1")
	require.NoError(t, err)

	claims, err := Verify(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "jti-1", claims.JWTID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := Sign(testSecret, time.Hour, "user-1", false, "jti-1")
	require.NoError(t, err)

	_, err = Verify([]byte("another-secret-another-secret-00"), tok)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tok, err := Sign(testSecret, -time.Minute, "user-1", false, "jti-1")
	require.NoError(t, err)

	_, err = Verify(testSecret, tok)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := Verify(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestClaimsContext(t *testing.T) {
	ctx := WithClaims(context.Background(), Claims{Subject: "u1", IsAdmin: true, JWTID: "j1"})
	assert.Equal(t, "u1", Subject(ctx))
	assert.True(t, IsAdmin(ctx))

	// Zero value when unauthenticated.
	assert.Equal(t, "", Subject(context.Background()))
	assert.False(t, IsAdmin(context.Background()))
}
