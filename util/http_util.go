// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/offerwall/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetBearerToken returns the token set by middleware.BearerToken, if any.
func GetBearerToken(c *gin.Context) string {
	if token, ok := c.Get("bearerToken"); ok {
		if s, ok := token.(string); ok {
			return s
		}
	}
	return ""
}
