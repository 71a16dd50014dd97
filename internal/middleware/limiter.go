package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Payment submission (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

// init starts the background cleanup routine.
func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit applies the general tier; RateLimitStrict is for the checkout
// submit route, where a flood is either abuse or a stuck retry loop.
func RateLimit() gin.HandlerFunc {
	return limitWith(limitGeneral, burstGeneral, "general")
}

func RateLimitStrict() gin.HandlerFunc {
	return limitWith(limitStrict, burstStrict, "strict")
}

func limitWith(limit rate.Limit, burst int, tier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := clientIdentity(c)
		limiter := getVisitor(identity+":"+tier, limit, burst)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}
		c.Next()
	}
}

// clientIdentity prefers the authenticated credential so the same customer
// has one quota across addresses; anonymous requests fall back to IP.
func clientIdentity(c *gin.Context) string {
	if token := Token(c); token != "" {
		return "token:" + token
	}
	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.Request.RemoteAddr
	}
	return "ip:" + ip
}
