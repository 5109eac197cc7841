package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/rbac-task-api/internal/errors"
	"github.com/yukikurage/rbac-task-api/internal/models"
)

// RequireRole rejects callers whose role is not one of roles.
// Must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			return
		}

		if !slices.Contains(roles, user.Role) {
			apierrors.Forbidden(c, "")
			return
		}

		c.Next()
	}
}
