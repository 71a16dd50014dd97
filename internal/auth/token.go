package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no access token")
	ErrTokenExpired = errors.New("access token expired")
)

// ExtractAccessToken pulls the bearer credential from the request, cookie
// first, Authorization header as fallback. Empty string when absent.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Validate checks the credential locally before it is forwarded upstream.
// The platform owns the signing key, so the signature is not verified here;
// only structure and expiry are, which is enough to send an expired client
// back to login without a round trip.
func Validate(token string, now time.Time) error {
	if token == "" {
		return ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ErrTokenExpired
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return ErrTokenExpired
	}
	if exp != nil && exp.Before(now) {
		return ErrTokenExpired
	}
	return nil
}
