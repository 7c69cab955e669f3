package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clausevet/internal/service"
)

const usernameKey = "username"

// AuthMiddleware validates the bearer token and stores the reviewer's
// username in the request context.
func AuthMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := authSvc.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// GetUsername returns the authenticated username, or "" when auth is
// disabled or the request is unauthenticated.
func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
