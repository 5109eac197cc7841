package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/constants"
	apierrors "github.com/yukikurage/rbac-task-api/internal/errors"
)

// RequireTaskID parses the :id path parameter. Ownership is not checked
// here; the task service decides after confirming the task exists.
func RequireTaskID() gin.HandlerFunc {
	return requireID(constants.ContextKeyTaskID, "Invalid task ID")
}

// RequireUserID parses the :id path parameter of user routes.
func RequireUserID() gin.HandlerFunc {
	return requireID(constants.ContextKeyPathUserID, "Invalid user ID")
}

func requireID(key, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.UnprocessableEntity(c, message)
			return
		}

		c.Set(key, id)
		c.Next()
	}
}

// GetTaskID retrieves the parsed task ID from context
func GetTaskID(c *gin.Context) (uint64, bool) {
	return getID(c, constants.ContextKeyTaskID)
}

// GetPathUserID retrieves the parsed user ID from context
func GetPathUserID(c *gin.Context) (uint64, bool) {
	return getID(c, constants.ContextKeyPathUserID)
}

func getID(c *gin.Context, key string) (uint64, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
