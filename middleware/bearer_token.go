package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerToken copies the Authorization bearer token, if present, into the
// request context under "bearerToken".
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && strings.TrimSpace(token) != "" {
			c.Set("bearerToken", strings.TrimSpace(token))
		}
		c.Next()
	}
}
