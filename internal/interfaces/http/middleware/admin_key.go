package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pfp-registry.backend/pkg/crypto"
)

// AdminKeyHeader carries the operator API key for admin endpoints
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware gates admin routes on a bcrypt-hashed operator key.
// With no hash configured the admin surface is disabled entirely.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "ERR_FORBIDDEN",
				"message": "Admin API is not configured",
			})
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" || !crypto.CheckKey(key, keyHash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "ERR_UNAUTHORIZED",
				"message": "Invalid admin key",
			})
			return
		}

		c.Next()
	}
}
