package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dino/internal/application/access"
	authApp "dino/internal/application/auth"
	userApp "dino/internal/application/user"
	"dino/internal/interfaces/http/middleware"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

// UserHandler handles HTTP requests for venue user administration
type UserHandler struct {
	userService   *userApp.Service
	authService   *authApp.Service
	accessService *access.Service
	logger        logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService *userApp.Service,
	authService *authApp.Service,
	accessService *access.Service,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		authService:   authService,
		accessService: accessService,
		logger:        log,
	}
}

type CreateVenueUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=operator admin"`
}

type SetUserPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// CreateVenueUser handles POST /venues/:venue_id/users
func (h *UserHandler) CreateVenueUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateVenueUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create venue user", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	created, err := h.userService.CreateVenueUser(c.Request.Context(), userApp.CreateVenueUserRequest{
		CreatorID: principal.User.ID(),
		VenueID:   c.Param("venue_id"),
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, newUserResponse(created, req.Role), "User created successfully")
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	target, err := h.userService.GetUser(c.Request.Context(), principal.User.ID(), c.Param("id"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	tier, err := h.accessService.ResolveTier(c.Request.Context(), target.RoleID())
	if err != nil {
		h.logger.Errorw("failed to resolve tier for user", "user_id", target.ID(), "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.OKResponse(c, newUserResponse(target, tier.String()))
}

// DeactivateUser handles POST /users/:id/deactivate
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), principal.User.ID(), c.Param("id")); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deactivated successfully", nil)
}

// SetUserPassword handles PUT /users/:id/password. The caller must be able
// to manage the target user; changing one's own password goes through
// /auth/change-password, which requires the current password.
func (h *UserHandler) SetUserPassword(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req SetUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	err := h.authService.ChangeManagedPassword(c.Request.Context(),
		principal.User.ID(), c.Param("id"), req.NewPassword)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// ListAccessibleVenues handles GET /me/venues
func (h *UserHandler) ListAccessibleVenues(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	venueIDs, err := h.accessService.AccessibleVenues(c.Request.Context(), principal.User.ID())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"venue_ids": venueIDs})
}
