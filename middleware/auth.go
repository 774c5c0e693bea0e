package middleware

import (
	"net/http"
	"strings"

	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Identify parses an optional bearer token and stores the caller's user id in
// the context. Requests without a valid token pass through anonymously.
func Identify(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if subject, err := utils.ParseToken(token, secret); err == nil {
				c.Set("userID", subject)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid bearer token.
// Must run after Identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userID") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		c.Next()
	}
}
