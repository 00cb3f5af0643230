package access

import (
	"dino/internal/domain/permission"
	"dino/internal/domain/user"
)

// Principal is the authenticated caller view the scope predicates operate
// on. It pairs the user aggregate with the resolved role tier so predicates
// stay pure and need no further lookups.
type Principal struct {
	User *user.User
	Tier permission.Tier
}

// CanAccessWorkspaceResource reports whether the principal may touch a
// resource owned by the given workspace. Superadmin bypasses the check.
func CanAccessWorkspaceResource(p Principal, resourceWorkspaceID string) bool {
	if p.User == nil {
		return false
	}
	if p.Tier == permission.TierSuperAdmin {
		return true
	}
	return p.User.WorkspaceID() == resourceWorkspaceID
}

// CanAccessVenueResource reports whether the principal may touch a resource
// owned by the given venue. Operators are bound to their assigned venue,
// admins to their venue-access list. Superadmin reach is workspace wide:
// the venue's owning workspace must match the principal's, and an unknown
// owning workspace (the venue could not be resolved) fails closed.
// ValidateUserPermissions delegates its venue step here, so the single-item
// pre-check, the resolver, and the list post-filter share one predicate.
func CanAccessVenueResource(p Principal, resourceVenueID, resourceWorkspaceID string) bool {
	if p.User == nil || resourceVenueID == "" {
		return false
	}
	switch p.Tier {
	case permission.TierSuperAdmin:
		return resourceWorkspaceID != "" && resourceWorkspaceID == p.User.WorkspaceID()
	case permission.TierAdmin:
		return p.User.HasVenueAccess(resourceVenueID)
	default:
		return p.User.VenueID() == resourceVenueID
	}
}

// FilterVenueScoped filters a list of venue-scoped resources with the same
// predicate used by the single-item pre-check. Both paths share one
// predicate so list visibility and item access can never disagree. scopeOf
// returns the item's venue id and that venue's owning workspace id.
func FilterVenueScoped[T any](p Principal, items []T, scopeOf func(T) (string, string)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		venueID, workspaceID := scopeOf(item)
		if CanAccessVenueResource(p, venueID, workspaceID) {
			out = append(out, item)
		}
	}
	return out
}
