package middleware

import (
	"errors"

	"github.com/fsauth/gathering-api/internal/constants"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireAdmin checks that the authenticated account has the admin role.
// Must run after RequireAuth.
func RequireAdmin(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				apierrors.Unauthorized(c, "")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if user.Role != models.UserRoleAdmin {
			apierrors.Forbidden(c, "Only administrators can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
