package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yomiyu15/Workingspacebackend/internal/pkg/jwt"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
)

const (
	ctxAdminID  = "admin_id"
	ctxUsername = "username"
	ctxRole     = "role"
)

// JWTAuth requires a bearer token. A missing token is 401; a token that fails
// validation is 403.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "No token provided")
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Invalid or expired token")
			return
		}

		c.Set(ctxAdminID, claims.AdminID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func AdminID(c *gin.Context) int64 {
	return c.GetInt64(ctxAdminID)
}
