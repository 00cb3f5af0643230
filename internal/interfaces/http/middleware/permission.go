package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dino/internal/application/access"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

type PermissionMiddleware struct {
	accessService *access.Service
	logger        logger.Interface
}

func NewPermissionMiddleware(accessService *access.Service, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		accessService: accessService,
		logger:        logger,
	}
}

// RequirePermission gates a venue-scoped route behind the full permission
// resolution pipeline. The venue comes from the :venue_id path parameter;
// the check is satisfied when the principal holds every named permission
// (explicitly or through its tier) and may reach that venue.
func (m *PermissionMiddleware) RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		venueID := c.Param("venue_id")
		check := m.accessService.ValidateUserPermissions(
			c.Request.Context(), principal.User.ID(), permissions, venueID, "")
		if !check.HasPermission {
			m.logger.Warnw("permission denied",
				"user_id", principal.User.ID(),
				"venue_id", venueID,
				"required", permissions,
				"reason", check.DeniedReason)
			utils.ErrorResponse(c, http.StatusForbidden, check.DeniedReason)
			c.Abort()
			return
		}

		c.Next()
	}
}
