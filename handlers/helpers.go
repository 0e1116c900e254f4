package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user id set by JWTAuthMiddleware.
// It aborts with 401 when missing.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return userID, true
}
