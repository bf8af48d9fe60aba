package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/config"
	"github.com/timaocord/wallet-backend/internal/utils"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// JWTAuthMiddleware creates a gin middleware for JWT authentication. The
// token's subject is the Discord ID for community users and the email for
// back-office accounts; handlers pick it up from the context.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.JWT.Secret == "" {
		log.Fatal("[FATAL] JWTAuthMiddleware: JWT secret is not configured")
	}

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			return
		}

		claims, err := utils.ValidateJWT(authHeader[len(bearerSchema):], cfg)
		if err != nil {
			log.Printf("[WARN] JWTAuthMiddleware: token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, sub)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin gates a route group to tokens carrying the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
