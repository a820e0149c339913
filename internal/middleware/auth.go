package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studyhall/internal/pkg/jwt"
	"studyhall/internal/pkg/response"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// JWTAuth requires a valid "Authorization: Bearer <token>" header and puts
// the user id and role into the gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be Bearer token")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
