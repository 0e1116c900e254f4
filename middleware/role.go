// middleware/role.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userRepo "auralynk/database/repository/user"
)

// RequireRole loads the authenticated user and rejects the request unless
// their role matches.
func RequireRole(users userRepo.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		userID, ok := userIDValue.(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		rec, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || rec == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if rec.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		c.Next()
	}
}
