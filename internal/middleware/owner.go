package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnerOnlyMiddleware restricts routes carrying an :ownerEmail path parameter
// to the authenticated owner. Entries are keyed by email, so the check is a
// case-insensitive string comparison against the token's email claim.
func OwnerOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("userEmail")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		owner := c.Param("ownerEmail")
		if owner == "" || !strings.EqualFold(owner, email.(string)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You can only access your own entries"})
			return
		}
		c.Next()
	}
}
