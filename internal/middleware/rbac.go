package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

// RequireAdmin lets admins and super admins through. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return require(func(u *models.User) bool { return u.HasAdminAccess() }, appErrors.Clone(appErrors.ErrForbidden, "admin access required"))
}

// RequireSuperAdmin lets super admins through. Must run after Auth.
func RequireSuperAdmin() gin.HandlerFunc {
	return require(func(u *models.User) bool { return u.IsSuperAdmin }, appErrors.ErrSuperAdminRequired)
}

func require(allowed func(*models.User) bool, denied error) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !allowed(user) {
			response.Error(c, denied)
			c.Abort()
			return
		}
		c.Next()
	}
}
