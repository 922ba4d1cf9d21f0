package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader is set by the gateway after it authenticated the caller.
	UserIDHeader = "X-User-ID"
	// UserIDKey is the gin context key holding the caller id.
	UserIDKey = "user_id"
)

// RequireUser rejects requests without a caller id with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}

// UserID returns the caller id stored by RequireUser.
func UserID(c *gin.Context) (string, bool) {
	uid := c.GetString(UserIDKey)
	return uid, uid != ""
}
