package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/disaster-relief-api/internal/database"
	apierrors "github.com/reliefops/disaster-relief-api/internal/errors"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

const contextKeyIsAdmin = "is_admin"

// RequireAdmin ensures the authenticated user holds the admin role. Must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}

		c.Set(contextKeyIsAdmin, true)
		c.Next()
	}
}

// LoadRole resolves the authenticated user's role into the context so
// handlers can distinguish admins from ordinary users. Must run after
// RequireAuth.
func LoadRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(contextKeyIsAdmin, user.IsAdmin())
		c.Next()
	}
}

// IsAdmin reports whether the current user was resolved as an admin.
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get(contextKeyIsAdmin)
	if !exists {
		return false
	}
	isAdmin, ok := v.(bool)
	return ok && isAdmin
}
