package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pos-backend/utils"
)

// RequireAuth validates the bearer credential and, when roles are given,
// restricts the route to those roles. The actor's id and role land in the
// gin context for downstream handlers.
func RequireAuth(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token not provided"})
				c.Abort()
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header format"})
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization token"})
			c.Abort()
			return
		}
		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set("actorID", claims.ID)
		c.Set("actorRole", claims.Role)

		c.Next()
	}
}

func roleAllowed(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
