package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := Sign("user-123")
	require.NoError(t, err)

	claims, err := Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, err := Sign("user-123")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = Verify(tok)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Verify("not.a.jwt")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "-1h")
	tok, err := Sign("user-123")
	require.NoError(t, err)

	_, err = Verify(tok)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.NoError(t, CheckPassword(hash, "hunter22"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithClaims(context.Background(), Claims{Subject: "u1"})
	assert.Equal(t, "u1", Subject(ctx))
	assert.Empty(t, Subject(context.Background()))
}
