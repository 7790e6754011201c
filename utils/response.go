// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes a JSON error payload and stops further handlers.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
