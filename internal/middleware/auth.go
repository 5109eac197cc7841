package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/constants"
	apierrors "github.com/yukikurage/rbac-task-api/internal/errors"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"go.uber.org/zap"
)

// RequireAuth resolves the caller from a bearer token. The Authorization
// header wins; browser clients fall back to the token stored in the session
// at login.
func RequireAuth(authService *services.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = sessionToken(c)
		}

		if token == "" {
			apierrors.Unauthorized(c, "Not authenticated")
			return
		}

		user, err := authService.ResolveToken(token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthenticated) {
				log.Error("Failed to resolve access token",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err),
				)
			}
			apierrors.Unauthorized(c, "")
			return
		}

		// Store the user in context for easy access in handlers
		c.Set(constants.ContextKeyCurrentUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	token, _ := sessions.Default(c).Get(constants.SessionKeyAccessToken).(string)
	return token
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok && user != nil
}
