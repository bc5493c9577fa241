package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/ticket_gate/internal/core/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 24*time.Hour)

	token, err := m.Issue(domain.Claims{ID: "abc", Email: "desk@example.com", Role: domain.RoleStaff})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.ID)
	assert.Equal(t, "desk@example.com", claims.Email)
	assert.Equal(t, domain.RoleStaff, claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", 24*time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(domain.Claims{ID: "abc", Role: domain.RoleStaff})
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(25 * time.Hour) }

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecretAndGarbage(t *testing.T) {
	token, err := NewTokenManager("other", time.Hour).Issue(domain.Claims{ID: "abc"})
	require.NoError(t, err)

	m := NewTokenManager("secret", time.Hour)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{ID: "abc", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
