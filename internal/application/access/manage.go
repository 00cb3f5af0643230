package access

import (
	"context"
	"fmt"

	"dino/internal/domain/permission"
	"dino/internal/shared/errors"
)

// CanManageUser reports whether the manager may administer the target user.
// Managing requires the same workspace and a strictly higher tier; an admin
// may only manage operators whose venue is in the admin's access list.
func (s *Service) CanManageUser(ctx context.Context, managerID, targetID string) (bool, error) {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return false, fmt.Errorf("failed to load manager: %w", err)
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to load target user: %w", err)
	}
	if manager == nil || target == nil {
		return false, nil
	}

	if manager.WorkspaceID() != target.WorkspaceID() {
		return false, nil
	}

	managerTier, err := s.ResolveTier(ctx, manager.RoleID())
	if err != nil {
		return false, fmt.Errorf("failed to resolve manager role: %w", err)
	}
	targetTier, err := s.ResolveTier(ctx, target.RoleID())
	if err != nil {
		return false, fmt.Errorf("failed to resolve target role: %w", err)
	}

	if !managerTier.Outranks(targetTier) {
		return false, nil
	}

	if managerTier == permission.TierAdmin {
		if targetTier != permission.TierOperator {
			return false, nil
		}
		return manager.HasVenueAccess(target.VenueID()), nil
	}

	return true, nil
}

// ValidateVenueRoleConstraint enforces the one-admin-per-venue rule. The
// constraint only binds the admin tier; operators and superadmins are
// unconstrained.
func (s *Service) ValidateVenueRoleConstraint(ctx context.Context, venueID string, tier permission.Tier) error {
	if tier != permission.TierAdmin {
		return nil
	}

	role, err := s.roleRepo.GetByName(ctx, tier.String())
	if err != nil {
		return fmt.Errorf("failed to load role %s: %w", tier, err)
	}
	if role == nil {
		return fmt.Errorf("role %s not seeded", tier)
	}

	count, err := s.userRepo.CountActiveByVenueRole(ctx, venueID, role.ID())
	if err != nil {
		return fmt.Errorf("failed to count venue admins: %w", err)
	}
	if count > 0 {
		return errors.NewConflictError(fmt.Sprintf("Venue already has a %s user", tier), venueID)
	}
	return nil
}

// AccessibleVenues returns the venue ids the principal may reach:
// superadmin sees every venue of the workspace, admin the access list,
// operator only the assigned venue.
func (s *Service) AccessibleVenues(ctx context.Context, userID string) ([]string, error) {
	principal, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if principal == nil {
		return []string{}, nil
	}

	tier, err := s.ResolveTier(ctx, principal.RoleID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	switch tier {
	case permission.TierSuperAdmin:
		ws, err := s.workspaceRepo.GetByID(ctx, principal.WorkspaceID())
		if err != nil {
			return nil, fmt.Errorf("failed to load workspace: %w", err)
		}
		if ws == nil {
			return []string{}, nil
		}
		return ws.VenueIDs(), nil
	case permission.TierAdmin:
		return principal.VenueAccess(), nil
	default:
		if principal.VenueID() == "" {
			return []string{}, nil
		}
		return []string{principal.VenueID()}, nil
	}
}
