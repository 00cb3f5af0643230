package access

import (
	"context"

	"dino/internal/domain/permission"
	"dino/internal/domain/user"
	"dino/internal/domain/venue"
	"dino/internal/domain/workspace"
	"dino/internal/shared/logger"
)

// PermissionCheck is the structured outcome of a permission resolution.
// Denials never throw; callers translate HasPermission=false into a 403.
type PermissionCheck struct {
	HasPermission   bool
	UserRole        permission.Tier
	WorkspaceAccess bool
	VenueAccess     bool
	Permissions     []string
	DeniedReason    string
}

// Service resolves role and permission questions for principals. All
// answers fail closed: any lookup failure is a denial, never an allow.
type Service struct {
	userRepo      user.Repository
	roleRepo      permission.RoleRepository
	venueRepo     venue.Repository
	workspaceRepo workspace.Repository
	logger        logger.Interface
}

// NewService creates a new access resolution service
func NewService(
	userRepo user.Repository,
	roleRepo permission.RoleRepository,
	venueRepo venue.Repository,
	workspaceRepo workspace.Repository,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		venueRepo:     venueRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// ResolveTier maps a principal's role id onto a tier. Missing or unknown
// roles degrade to operator, the least-privileged tier.
func (s *Service) ResolveTier(ctx context.Context, roleID string) (permission.Tier, error) {
	if roleID == "" {
		return permission.TierOperator, nil
	}
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return permission.TierOperator, err
	}
	if role == nil {
		return permission.TierOperator, nil
	}
	return role.Tier(), nil
}
