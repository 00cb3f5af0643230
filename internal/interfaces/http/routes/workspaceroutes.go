package routes

import (
	"github.com/gin-gonic/gin"

	"dino/internal/interfaces/http/handlers"
)

// WorkspaceRouteConfig holds dependencies for tenant provisioning routes.
type WorkspaceRouteConfig struct {
	WorkspaceHandler *handlers.WorkspaceHandler
}

// SetupWorkspaceRoutes configures tenant provisioning routes. Provisioning
// is unauthenticated: it is how the first principal of a tenant comes to
// exist.
func SetupWorkspaceRoutes(engine *gin.Engine, cfg *WorkspaceRouteConfig) {
	engine.POST("/workspaces", cfg.WorkspaceHandler.Provision)
}
