package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

// InternalKeyHeader carries the shared secret of service-to-service calls.
const InternalKeyHeader = "X-Internal-Key"

// InternalKey guards endpoints called by trusted backends. An empty key disables them.
func InternalKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "internal endpoints are disabled"))
			c.Abort()
			return
		}
		given := c.GetHeader(InternalKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid internal key"))
			c.Abort()
			return
		}
		c.Next()
	}
}
