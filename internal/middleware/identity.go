package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDKey is where the identity middleware stores the caller's user id.
const UserIDKey = "user_id"

// RequireUser trusts the X-User-ID header set by the authenticating
// gateway in front of this service and puts the parsed id on the context.
// Verifying credentials is that gateway's job, not ours.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}

// CurrentUserID pulls the authenticated user id off the context.
func CurrentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
