// Package server assembles the HTTP router from configuration and storage.
package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/config"
	"github.com/yukikurage/rbac-task-api/internal/constants"
	"github.com/yukikurage/rbac-task-api/internal/handlers"
	"github.com/yukikurage/rbac-task-api/internal/middleware"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/repository"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"github.com/yukikurage/rbac-task-api/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles the business services behind the HTTP surface.
type Services struct {
	Auth  *services.AuthService
	Users *services.UserService
	Tasks *services.TaskService
}

// NewServices wires repositories and services over db.
func NewServices(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Services {
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	issuer := session.NewIssuer(cfg.SecretKey, cfg.AccessTokenTTL())

	return &Services{
		Auth:  services.NewAuthService(userRepo, issuer, log),
		Users: services.NewUserService(userRepo),
		Tasks: services.NewTaskService(taskRepo, userRepo, log),
	}
}

// NewRouter builds the gin engine with every route mounted under the
// configured API prefix.
func NewRouter(cfg *config.Config, svc *Services, store sessions.Store, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		sessions.Sessions(constants.SessionCookieName, store),
	)

	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	userHandler := handlers.NewUserHandler(svc.Auth, svc.Users, log)
	taskHandler := handlers.NewTaskHandler(svc.Tasks, log)
	requireAuth := middleware.RequireAuth(svc.Auth, log)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + cfg.ProjectName,
			"docs":    cfg.APIPrefix,
			"version": cfg.Version,
		})
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": cfg.ProjectName + " is running",
		})
	})

	api := r.Group(cfg.APIPrefix)
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/register", userHandler.Register)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("/me", requireAuth, userHandler.Me)
			users.PUT("/me", requireAuth, userHandler.UpdateMe)
			users.GET("", requireAuth, userHandler.List)
			users.GET("/:id", requireAuth, middleware.RequireUserID(), userHandler.Get)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleManager), taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
		}
	}

	return r
}
