package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	a := NewJWTAuthenticator("secret", "yelpcamp", "yelpcamp", time.Hour)

	token, issued, err := a.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, issued.TokenID)

	got, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, issued.TokenID, got.TokenID)
	assert.WithinDuration(t, issued.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestVerifyRejects(t *testing.T) {
	a := NewJWTAuthenticator("secret", "yelpcamp", "yelpcamp", time.Hour)
	token, _, err := a.Issue(7)
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewJWTAuthenticator("other", "yelpcamp", "yelpcamp", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other audience", func(t *testing.T) {
		_, err := NewJWTAuthenticator("secret", "admin", "yelpcamp", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "yelpcamp",
			Audience:  jwt.ClaimStrings{"yelpcamp"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}
		old, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = a.Verify(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Hour)))
	require.NoError(t, m.Revoke(ctx, "stale", now.Add(-time.Hour)))

	revoked, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "stale")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = m.IsRevoked(ctx, "a")
	assert.False(t, revoked, "revocation lapses with the token")
}
