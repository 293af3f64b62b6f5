package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ispcrm/internal/authz"
)

// Require gates a route group on a capability from the authz policy.
func Require(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
			return
		}
		if !authz.Can(user.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
