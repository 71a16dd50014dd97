package handler

import (
	"net/http"

	"koi-checkout/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *CheckoutHandler, loginURL string) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	co := api.Group("/checkout", middleware.RequireAuth(loginURL))
	{
		co.POST("/quote", middleware.RateLimit(), h.Quote)
		co.POST("", middleware.RateLimitStrict(), h.Submit)
	}
}
