package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService(NewInMemoryTokenRepository())
	ctx := context.Background()

	plaintext, issued, err := svc.Issue(ctx, 7, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, int64(7), issued.UserID)
	assert.Nil(t, issued.ExpiresAt)

	// Plaintext is "<id>|<secret>" and the secret is never stored
	id, secret, found := strings.Cut(plaintext, "|")
	require.True(t, found)
	assert.Equal(t, issued.ID.String(), id)
	assert.NotEqual(t, secret, issued.TokenHash)
	assert.NotContains(t, issued.TokenHash, secret)

	verified, err := svc.Verify(ctx, plaintext)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, verified.ID)
	assert.Equal(t, int64(7), verified.UserID)
	assert.NotNil(t, verified.LastUsedAt)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewTokenService(NewInMemoryTokenRepository())
	ctx := context.Background()

	plaintext, issued, err := svc.Issue(ctx, 1, "auth_token")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify(ctx, "11111111-2222-3333-4444-555555555555|wrongsecret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Right id, wrong secret
	_, err = svc.Verify(ctx, issued.ID.String()+"|"+strings.Repeat("x", 40))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Untampered token still verifies
	_, err = svc.Verify(ctx, plaintext)
	assert.NoError(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	repo := NewInMemoryTokenRepository()
	svc := NewTokenService(repo, WithExpiry(-time.Minute))
	ctx := context.Background()

	plaintext, issued, err := svc.Issue(ctx, 1, "auth_token")
	require.NoError(t, err)
	require.NotNil(t, issued.ExpiresAt)

	_, err = svc.Verify(ctx, plaintext)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevoke(t *testing.T) {
	svc := NewTokenService(NewInMemoryTokenRepository())
	ctx := context.Background()

	plaintext, issued, err := svc.Issue(ctx, 1, "auth_token")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, issued.ID))

	_, err = svc.Verify(ctx, plaintext)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeAll(t *testing.T) {
	svc := NewTokenService(NewInMemoryTokenRepository())
	ctx := context.Background()

	first, _, err := svc.Issue(ctx, 1, "auth_token")
	require.NoError(t, err)
	second, _, err := svc.Issue(ctx, 1, "auth_token")
	require.NoError(t, err)
	other, _, err := svc.Issue(ctx, 2, "auth_token")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, 1))

	_, err = svc.Verify(ctx, first)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.Verify(ctx, second)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.Verify(ctx, other)
	assert.NoError(t, err)
}
