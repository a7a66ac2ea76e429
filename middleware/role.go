package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUserType aborts with 403 unless the authenticated caller has
// the given user type. Must run after AuthMiddleware.
func RequireUserType(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userType") != userType {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action requires a " + userType + " account",
			})
			return
		}
		c.Next()
	}
}
