package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	workspaceApp "dino/internal/application/workspace"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

// WorkspaceHandler handles HTTP requests for tenant provisioning
type WorkspaceHandler struct {
	workspaceService *workspaceApp.Service
	logger           logger.Interface
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *workspaceApp.Service, log logger.Interface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           log,
	}
}

type ProvisionWorkspaceRequest struct {
	DisplayName   string `json:"display_name" binding:"required,min=1,max=100"`
	VenueName     string `json:"venue_name" binding:"required,min=1,max=100"`
	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerFullName string `json:"owner_full_name" binding:"required,min=1,max=100"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8"`
}

type ProvisionWorkspaceResponse struct {
	WorkspaceID   string        `json:"workspace_id"`
	WorkspaceName string        `json:"workspace_name"`
	VenueID       string        `json:"venue_id"`
	Owner         *UserResponse `json:"owner"`
}

// Provision handles POST /workspaces
func (h *WorkspaceHandler) Provision(c *gin.Context) {
	var req ProvisionWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for provision workspace", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.workspaceService.Provision(c.Request.Context(), workspaceApp.ProvisionRequest{
		DisplayName:   req.DisplayName,
		VenueName:     req.VenueName,
		OwnerEmail:    req.OwnerEmail,
		OwnerFullName: req.OwnerFullName,
		OwnerPassword: req.OwnerPassword,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, ProvisionWorkspaceResponse{
		WorkspaceID:   result.Workspace.ID(),
		WorkspaceName: result.Workspace.Name(),
		VenueID:       result.Venue.ID(),
		Owner:         newUserResponse(result.Owner, "superadmin"),
	}, "Workspace created successfully")
}
