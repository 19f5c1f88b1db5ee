package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/services"
)

// ContextUserIDKey is where the authenticated user's ID lands in the gin
// context. Handlers read it back through GetUserID.
const ContextUserIDKey = "userID"

// bearerToken extracts the credential from an "Authorization: Bearer <jwt>"
// header. Magic-link completion carries its credential in the URL path
// instead and never passes through here.
func bearerToken(c *gin.Context) (string, bool) {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

// AuthMiddleware guards the activity, group and leaderboard routes. A token
// whose signature checks out but whose subject was deleted is rejected like
// any other stale session; only the message differs.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "bearer token required")
			return
		}

		userID, err := tokenService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				abortUnauthorized(c, "account no longer active")
				return
			}
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok
}
