package middleware

import (
	"net/http"
	"strings"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session token from the cookie or the
// Authorization header and checks the role claim against the closed role set.
func AuthMiddleware(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided"})
				c.Abort()
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		claimRole, err := models.ParseRole(claims.Role)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}
		// super-admin passes every admin gate
		if claimRole != role && !(role == models.RoleAdmin && claimRole == models.RoleSuperAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			c.Abort()
			return
		}

		c.Set("accountID", claims.ID)
		c.Set("role", string(claimRole))

		c.Next()
	}
}

// AccountID returns the authenticated account id set by AuthMiddleware.
func AccountID(c *gin.Context) string {
	return c.GetString("accountID")
}
