package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
)

// RequireRole ensures that the authenticated account has the specified role.
// It must run after JWTAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}

		if r, _ := role.(string); r != requiredRole {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(string(domain.RoleAdmin))
}
