package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitca-league/sitca-backend/internal/middleware"
)

// RoleMiddleware gates a route group on the role carried by the caller's
// token. It must run after middleware.AuthMiddleware, which is what puts the
// role into the context.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, err := middleware.GetRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: " + err.Error()})
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if strings.EqualFold(userRole, requiredRole) {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You don't have permission to access this resource",
			})
			return
		}

		c.Next()
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("ADMIN")
}
