package middleware

import (
	"net/http"
	"time"

	"koi-checkout/internal/auth"

	"github.com/gin-gonic/gin"
)

const TokenKey = "accessToken"

// RequireAuth rejects requests without a live bearer credential. The 401
// carries the login location so the client can send the customer there
// instead of showing an error.
func RequireAuth(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractAccessToken(c.Request)
		if err := auth.Validate(token, time.Now()); err != nil {
			c.Header("Location", loginURL)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"login": loginURL})
			return
		}
		c.Set(TokenKey, token)
		c.Next()
	}
}

// Token returns the bearer credential stored by RequireAuth.
func Token(c *gin.Context) string {
	if v, ok := c.Get(TokenKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
