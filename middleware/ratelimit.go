package middleware

import (
	"log"
	"net/http"

	"dinedash/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit counts every request per client IP under scope. Limiter
// failures let the request through.
func RateLimit(l ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			log.Printf("rate limit %s: %v", scope, err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Please try again later."})
			return
		}
		c.Next()
	}
}
