package routes

import (
	"github.com/gin-gonic/gin"

	"dino/internal/interfaces/http/handlers"
	"dino/internal/interfaces/http/middleware"
)

// TableRouteConfig holds dependencies for table routes.
type TableRouteConfig struct {
	TableHandler         *handlers.TableHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTableRoutes configures staff table management routes and the public
// QR resolution endpoint that printed codes point to.
func SetupTableRoutes(engine *gin.Engine, cfg *TableRouteConfig) {
	tables := engine.Group("/venues/:venue_id/tables", cfg.AuthMiddleware.RequireAuth())
	{
		tables.POST("",
			cfg.PermissionMiddleware.RequirePermission("table:create"),
			cfg.TableHandler.CreateTable)
		tables.GET("",
			cfg.PermissionMiddleware.RequirePermission("table:read"),
			cfg.TableHandler.ListTables)
		tables.PUT("/:table_id/status",
			cfg.PermissionMiddleware.RequirePermission("table:update_status"),
			cfg.TableHandler.UpdateStatus)
		tables.POST("/:table_id/qr",
			cfg.PermissionMiddleware.RequirePermission("table:update"),
			cfg.TableHandler.RegenerateQR)
	}

	public := engine.Group("/public")
	{
		public.GET("/venues/:venue_id/tables/resolve", cfg.TableHandler.ResolveQR)
	}
}
