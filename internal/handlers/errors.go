package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/authz"
	apierrors "github.com/yukikurage/rbac-task-api/internal/errors"
	"github.com/yukikurage/rbac-task-api/internal/middleware"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status. Anything not
// classified here is logged and reported as 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, authz.ErrForbidden):
		apierrors.Forbidden(c, forbiddenMessage(err))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.DuplicateEmail(c)
	case errors.Is(err, services.ErrValidation):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		log.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		apierrors.InternalError(c, "")
	}
}

func forbiddenMessage(err error) string {
	if errors.Is(err, authz.ErrStatusOnly) {
		return "Users can only update task status"
	}
	return ""
}

// currentUser fetches the caller set by RequireAuth, answering 401 when the
// route was mounted without it.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}
