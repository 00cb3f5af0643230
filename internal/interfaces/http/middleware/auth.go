package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dino/internal/application/access"
	authApp "dino/internal/application/auth"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextKeyPrincipal = "principal"
	ContextKeyUserID    = "user_id"
)

type AuthMiddleware struct {
	authService *authApp.Service
	logger      logger.Interface
}

func NewAuthMiddleware(authService *authApp.Service, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// RequireAuth authenticates the bearer token and stores the resolved
// principal on the request context. The principal is loaded fresh from the
// store on every request so deactivation takes effect immediately.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		principal, err := m.authService.AuthenticateBearer(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warnw("bearer authentication failed", "path", c.Request.URL.Path, "error", err)
			utils.AppErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Set(ContextKeyUserID, principal.User.ID())

		c.Next()
	}
}

// PrincipalFromContext returns the principal stored by RequireAuth.
func PrincipalFromContext(c *gin.Context) (*access.Principal, bool) {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*access.Principal)
	return principal, ok && principal != nil
}
