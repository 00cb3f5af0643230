package access

import (
	"context"
	"fmt"
	"strings"

	"dino/internal/domain/permission"
)

// ValidateUserPermissions checks whether the principal may perform an action
// requiring the given permissions, optionally scoped to a venue and a
// workspace. The first failing condition determines DeniedReason, in
// priority order: workspace mismatch, venue mismatch, missing permissions.
func (s *Service) ValidateUserPermissions(
	ctx context.Context,
	userID string,
	requiredPermissions []string,
	venueID string,
	workspaceID string,
) PermissionCheck {
	principal, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Errorw("permission check lookup failed", "user_id", userID, "error", err)
		return deniedCheck(permission.TierOperator, fmt.Sprintf("Permission check failed: %v", err))
	}
	if principal == nil {
		return deniedCheck(permission.TierOperator, "User not found")
	}

	tier, err := s.ResolveTier(ctx, principal.RoleID())
	if err != nil {
		s.logger.Errorw("permission check role lookup failed", "user_id", userID, "error", err)
		return deniedCheck(permission.TierOperator, fmt.Sprintf("Permission check failed: %v", err))
	}

	if !principal.IsActive() {
		return deniedCheck(tier, "User account is inactive")
	}

	explicit := make(map[string]bool, len(principal.Permissions()))
	for _, p := range principal.Permissions() {
		explicit[p] = true
	}

	workspaceAccess := true
	if workspaceID != "" && principal.WorkspaceID() != workspaceID && tier != permission.TierSuperAdmin {
		workspaceAccess = false
	}

	// The venue step is the shared scope predicate. Only the superadmin
	// branch needs the venue's owning workspace, so the lookup is confined
	// to that tier; a nil venue leaves the workspace id empty and the
	// predicate fails closed.
	venueAccess := true
	if venueID != "" {
		venueWorkspaceID := ""
		if tier == permission.TierSuperAdmin {
			target, err := s.venueRepo.GetByID(ctx, venueID)
			if err != nil {
				s.logger.Errorw("permission check venue lookup failed", "venue_id", venueID, "error", err)
				return deniedCheck(tier, fmt.Sprintf("Permission check failed: %v", err))
			}
			if target != nil {
				venueWorkspaceID = target.WorkspaceID()
			}
		}
		venueAccess = CanAccessVenueResource(Principal{User: principal, Tier: tier}, venueID, venueWorkspaceID)
	}

	missing := make([]string, 0, len(requiredPermissions))
	for _, p := range requiredPermissions {
		if !explicit[p] {
			missing = append(missing, p)
		}
	}
	hasAll := len(missing) == 0 || tier.SatisfiesByFallback(requiredPermissions)

	overall := hasAll && workspaceAccess && venueAccess

	deniedReason := ""
	if !overall {
		switch {
		case !workspaceAccess:
			deniedReason = "Access denied: Different workspace"
		case !venueAccess:
			deniedReason = "Access denied: No venue access"
		default:
			deniedReason = "Missing permissions: " + strings.Join(missing, ", ")
		}
	}

	return PermissionCheck{
		HasPermission:   overall,
		UserRole:        tier,
		WorkspaceAccess: workspaceAccess,
		VenueAccess:     venueAccess,
		Permissions:     principal.Permissions(),
		DeniedReason:    deniedReason,
	}
}

func deniedCheck(tier permission.Tier, reason string) PermissionCheck {
	return PermissionCheck{
		HasPermission:   false,
		UserRole:        tier,
		WorkspaceAccess: false,
		VenueAccess:     false,
		DeniedReason:    reason,
	}
}
