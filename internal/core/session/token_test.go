package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workboard/taskboard/internal/core/domain"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	user := &domain.CurrentUser{ID: "emp1", Name: "Alex", Role: domain.RoleAdmin}

	raw, exp, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "emp1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.True(t, claims.Matches(user))
	assert.False(t, claims.Matches(&domain.CurrentUser{ID: "emp1", Role: domain.RoleEmployee}))
	assert.False(t, claims.Matches(nil))
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	user := &domain.CurrentUser{ID: "emp1", Role: domain.RoleEmployee}

	other := NewTokens("other-secret", time.Hour)
	foreign, _, err := other.Issue(user)
	require.NoError(t, err)

	expiredIssuer := NewTokens("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredIssuer.Issue(user)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "emp1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "emp1"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":        "not-a-token",
		"wrong secret":   foreign,
		"expired":        expired,
		"alg none":       none,
		"missing expiry": noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
