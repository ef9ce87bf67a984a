package handlers

import (
	"errors"
	"net/http"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates admin user-management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a new dashboard user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name     string            `json:"name" binding:"required,max=255"`
		Email    string            `json:"email" binding:"required,email"`
		Password string            `json:"password" binding:"required"`
		Role     models.UserRole   `json:"role"`
		Status   models.UserStatus `json:"status"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns all dashboard users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	userDTOs := make([]dto.UserDTO, len(users))
	for i, u := range users {
		userDTOs[i] = dto.ToUserDTO(u)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": userDTOs,
	})
}

// GetUser returns a single user
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser updates a user; password is rehashed only when provided
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Name     string            `json:"name" binding:"required,max=255"`
		Email    string            `json:"email" binding:"required,email"`
		Password string            `json:"password"`
		Role     models.UserRole   `json:"role"`
		Status   models.UserStatus `json:"status"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser deletes a user; admin accounts cannot be deleted
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrCannotDeleteAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidUserRole),
		errors.Is(err, services.ErrInvalidUserStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
