package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/rbac-task-api/internal/constants"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/repository"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"github.com/yukikurage/rbac-task-api/internal/session"
	"github.com/yukikurage/rbac-task-api/internal/testutil"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	db := testutil.NewTestDB(t)
	issuer := session.NewIssuer("secret", time.Minute)
	authService := services.NewAuthService(repository.NewUserRepository(db), issuer, zap.NewNop())

	user := testutil.CreateUser(t, db, "alice@example.com", models.RoleManager)
	token, err := issuer.Issue(user.Email, 0)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(authService, zap.NewNop()), func(c *gin.Context) {
		current, ok := GetCurrentUser(c)
		require.True(t, ok)
		id, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, current.ID, id)
		c.String(http.StatusOK, current.Email)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			} else {
				assert.Equal(t, "alice@example.com", w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	withUser := func(role models.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(constants.ContextKeyCurrentUser, &models.User{ID: 1, Role: role})
			c.Next()
		}
	}

	for role, expected := range map[models.Role]int{
		models.RoleAdmin:   http.StatusOK,
		models.RoleManager: http.StatusOK,
		models.RoleUser:    http.StatusForbidden,
	} {
		t.Run(string(role), func(t *testing.T) {
			r := gin.New()
			r.GET("/", withUser(role), RequireRole(models.RoleAdmin, models.RoleManager), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			assert.Equal(t, expected, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		})
	}

	r := gin.New()
	r.GET("/", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRequireTaskID(t *testing.T) {
	r := gin.New()
	r.GET("/tasks/:id", RequireTaskID(), func(c *gin.Context) {
		id, ok := GetTaskID(c)
		require.True(t, ok)
		assert.Equal(t, uint64(42), id)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/tasks/42", nil)).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(r, httptest.NewRequest(http.MethodGet, "/tasks/abc", nil)).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(r, httptest.NewRequest(http.MethodGet, "/tasks/-1", nil)).Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(constants.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(constants.RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
