package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestManager(clock *fakeClock) *Manager {
	return &Manager{
		Secret: []byte("test-secret"),
		TTL:    DefaultTokenTTL,
		Issuer: "wildtrack-backend",
		Now:    clock.Now,
	}
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	token, err := m.Issue("65f1c0ffee", RoleManager, "lindiwe")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee", claims.SubjectID())
	assert.Equal(t, "lindiwe", claims.Username)
	assert.Equal(t, RoleManager, claims.Role)
	assert.True(t, clock.now.Add(DefaultTokenTTL).Equal(claims.ExpiresAt.Time))
}

func TestVerifyExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	m := newTestManager(clock)

	token, err := m.Issue("admin-1", RoleAdmin, "admin")
	require.NoError(t, err)

	clock.now = issuedAt.Add(DefaultTokenTTL - time.Second)
	_, err = m.Verify(token)
	assert.NoError(t, err, "token must still verify one second before expiry")

	clock.now = issuedAt.Add(DefaultTokenTTL + time.Second)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	token, err := m.Issue("admin-1", RoleAdmin, "admin")
	require.NoError(t, err)

	other := newTestManager(clock)
	other.Secret = []byte("another-secret")
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	_, err = m.Verify(parts[0] + "." + parts[1] + ".c2lnbmF0dXJl")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	claims := Claims{
		Username: "admin",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			Issuer:    m.Issuer,
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	m := newTestManager(clock)

	claims := Claims{
		Username:         "admin",
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1", Issuer: m.Issuer},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueWithoutSecret(t *testing.T) {
	m := &Manager{}
	_, err := m.Issue("admin-1", RoleAdmin, "admin")
	assert.Error(t, err)
}
