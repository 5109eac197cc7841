package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/rbac-task-api/internal/authz"
	"github.com/yukikurage/rbac-task-api/internal/constants"
	"github.com/yukikurage/rbac-task-api/internal/dto"
	apierrors "github.com/yukikurage/rbac-task-api/internal/errors"
	"github.com/yukikurage/rbac-task-api/internal/middleware"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(authService *services.AuthService, userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		log:         log,
	}
}

// Register creates a user-role account
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "A valid email and a password are required")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Me returns the caller
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe applies a partial update to the caller's own profile
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateMeRequest struct {
		FullName *string `json:"full_name"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password"`
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateUser(user, services.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// List returns a page of users to admins
func (h *UserHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageUsers(user.Role) {
		apierrors.Forbidden(c, "")
		return
	}

	params, err := utils.GetPaginationParams(c, constants.DefaultUserPageSize, constants.MaxUserPageSize)
	if err != nil {
		apierrors.UnprocessableEntity(c, err.Error())
		return
	}

	users, err := h.userService.ListUsers(params)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// Get returns any user to admins
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !authz.CanManageUsers(user.Role) {
		apierrors.Forbidden(c, "")
		return
	}

	id, _ := middleware.GetPathUserID(c)
	found, err := h.userService.GetUser(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*found))
}
