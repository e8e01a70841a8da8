package middleware

import (
	"net/http"
	"strings"

	"listing-pricer/pkg/auth"
	"listing-pricer/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// disables the check.
func AuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		logger.GlobalLogger.Warnf("JWT secret not configured; API routes are unauthenticated")
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "authorization header required", "code": "UNAUTHORIZED"}})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid authorization header format", "code": "UNAUTHORIZED"}})
			return
		}

		claims, err := auth.ValidateJWT(parts[1], secret)
		if err != nil {
			logger.GlobalLogger.Debugf("rejected token from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid or expired token", "code": "UNAUTHORIZED"}})
			return
		}

		c.Set("client_id", claims.ClientID)
		c.Next()
	}
}
