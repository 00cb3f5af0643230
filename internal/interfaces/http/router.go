package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dino/internal/interfaces/http/middleware"
	"dino/internal/interfaces/http/routes"
)

// SetupRoutes installs global middleware and registers all route groups.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupWorkspaceRoutes(c.engine, &routes.WorkspaceRouteConfig{
		WorkspaceHandler: c.wsHandler,
	})

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.authHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupUserRoutes(c.engine, &routes.UserRouteConfig{
		UserHandler:    c.userHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupTableRoutes(c.engine, &routes.TableRouteConfig{
		TableHandler:         c.tableHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}
