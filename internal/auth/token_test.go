package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "5",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("From cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("From header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(r))
	})

	t.Run("Cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("Absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", ExtractAccessToken(r))
	})

	t.Run("Malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic abc123")
		assert.Equal(t, "", ExtractAccessToken(r))
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Valid token", func(t *testing.T) {
		token := signedToken(t, now.Add(time.Hour))
		assert.NoError(t, Validate(token, now))
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signedToken(t, now.Add(-time.Hour))
		assert.ErrorIs(t, Validate(token, now), ErrTokenExpired)
	})

	t.Run("Empty token", func(t *testing.T) {
		assert.ErrorIs(t, Validate("", now), ErrNoToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		assert.ErrorIs(t, Validate("not-a-jwt", now), ErrTokenExpired)
	})
}
