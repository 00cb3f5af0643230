package routes

import (
	"github.com/gin-gonic/gin"

	"dino/internal/interfaces/http/handlers"
	"dino/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user administration routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user administration routes. The creation and
// manage checks live in the application layer, which resolves the creator's
// credential and the manage hierarchy in one place.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	venueUsers := engine.Group("/venues/:venue_id/users", cfg.AuthMiddleware.RequireAuth())
	{
		venueUsers.POST("", cfg.UserHandler.CreateVenueUser)
	}

	users := engine.Group("/users", cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("/:id", cfg.UserHandler.GetUser)
		users.POST("/:id/deactivate", cfg.UserHandler.DeactivateUser)
		users.PUT("/:id/password", cfg.UserHandler.SetUserPassword)
	}

	me := engine.Group("/me", cfg.AuthMiddleware.RequireAuth())
	{
		me.GET("/venues", cfg.UserHandler.ListAccessibleVenues)
	}
}
