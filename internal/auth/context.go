package auth

import "github.com/gin-gonic/gin"

// Gin context keys set by AuthRequired.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}
