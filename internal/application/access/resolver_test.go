package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dino/internal/domain/permission"
	"dino/internal/shared/logger"
)

func newTestService(userRepo *mockUserRepository, roleRepo *mockRoleRepository, venueRepo *mockVenueRepository, wsRepo *mockWorkspaceRepository) *Service {
	return NewService(userRepo, roleRepo, venueRepo, wsRepo, logger.NewLogger())
}

func TestValidateUserPermissions_OperatorCrossVenue(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

	operator := buildPrincipal(t, principalSpec{
		id: "op-1", workspaceID: "ws-1", venueID: "venue-a", roleID: "role-op",
		permissions: []string{"order:read"},
	})
	userRepo.On("GetByID", mock.Anything, "op-1").Return(operator, nil)
	roleRepo.On("GetByID", mock.Anything, "role-op").Return(buildRole(t, "role-op", permission.TierOperator), nil)

	check := svc.ValidateUserPermissions(context.Background(), "op-1", []string{"order:read"}, "venue-b", "")

	assert.False(t, check.HasPermission)
	assert.False(t, check.VenueAccess)
	assert.True(t, check.WorkspaceAccess)
	assert.Equal(t, "Access denied: No venue access", check.DeniedReason)
}

func TestValidateUserPermissions_SuperadminSameWorkspaceVenue(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	venueRepo := new(mockVenueRepository)
	svc := newTestService(userRepo, roleRepo, venueRepo, new(mockWorkspaceRepository))

	super := buildPrincipal(t, principalSpec{
		id: "sa-1", workspaceID: "ws-1", roleID: "role-sa",
	})
	userRepo.On("GetByID", mock.Anything, "sa-1").Return(super, nil)
	roleRepo.On("GetByID", mock.Anything, "role-sa").Return(buildRole(t, "role-sa", permission.TierSuperAdmin), nil)
	venueRepo.On("GetByID", mock.Anything, "venue-x").Return(buildVenue(t, "venue-x", "ws-1"), nil)

	check := svc.ValidateUserPermissions(context.Background(), "sa-1", []string{"venue:delete"}, "venue-x", "")

	assert.True(t, check.HasPermission)
	assert.True(t, check.VenueAccess)
	assert.Empty(t, check.DeniedReason)
}

func TestValidateUserPermissions_SuperadminForeignVenueDenied(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	venueRepo := new(mockVenueRepository)
	svc := newTestService(userRepo, roleRepo, venueRepo, new(mockWorkspaceRepository))

	super := buildPrincipal(t, principalSpec{
		id: "sa-1", workspaceID: "ws-1", roleID: "role-sa",
	})
	userRepo.On("GetByID", mock.Anything, "sa-1").Return(super, nil)
	roleRepo.On("GetByID", mock.Anything, "role-sa").Return(buildRole(t, "role-sa", permission.TierSuperAdmin), nil)
	venueRepo.On("GetByID", mock.Anything, "venue-z").Return(buildVenue(t, "venue-z", "ws-other"), nil)

	check := svc.ValidateUserPermissions(context.Background(), "sa-1", []string{"venue:read"}, "venue-z", "")

	assert.False(t, check.HasPermission)
	assert.Equal(t, "Access denied: No venue access", check.DeniedReason)
}

func TestValidateUserPermissions_CrossWorkspaceDenied(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

	admin := buildPrincipal(t, principalSpec{
		id: "ad-1", workspaceID: "ws-1", roleID: "role-ad",
		venueAccess: []string{"venue-a"},
	})
	userRepo.On("GetByID", mock.Anything, "ad-1").Return(admin, nil)
	roleRepo.On("GetByID", mock.Anything, "role-ad").Return(buildRole(t, "role-ad", permission.TierAdmin), nil)

	check := svc.ValidateUserPermissions(context.Background(), "ad-1", []string{"venue:read"}, "", "ws-2")

	assert.False(t, check.HasPermission)
	assert.False(t, check.WorkspaceAccess)
	assert.Equal(t, "Access denied: Different workspace", check.DeniedReason)
}

func TestValidateUserPermissions_AdminExcludedDeniedWithReason(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

	admin := buildPrincipal(t, principalSpec{
		id: "ad-1", workspaceID: "ws-1", roleID: "role-ad",
		permissions: []string{"venue:read", "venue:update"},
		venueAccess: []string{"venue-a"},
	})
	userRepo.On("GetByID", mock.Anything, "ad-1").Return(admin, nil)
	roleRepo.On("GetByID", mock.Anything, "role-ad").Return(buildRole(t, "role-ad", permission.TierAdmin), nil)

	check := svc.ValidateUserPermissions(context.Background(), "ad-1", []string{"venue:delete"}, "venue-a", "")

	assert.False(t, check.HasPermission)
	assert.True(t, check.VenueAccess)
	assert.True(t, check.WorkspaceAccess)
	assert.Contains(t, check.DeniedReason, "venue:delete")
}

func TestValidateUserPermissions_HierarchyMonotonicity(t *testing.T) {
	// Everything the operator whitelist grants must also pass for admin and
	// superadmin; everything admin passes must pass for superadmin.
	operatorGrants := []string{
		"venue:read", "order:read", "order:update_status",
		"table:read", "table:update_status", "customer:read",
	}

	for _, perm := range operatorGrants {
		for _, tier := range []permission.Tier{permission.TierOperator, permission.TierAdmin, permission.TierSuperAdmin} {
			assert.True(t, tier.SatisfiesByFallback([]string{perm}),
				"tier %s should grant %s", tier, perm)
		}
	}

	adminExcluded := []string{
		"workspace:delete", "workspace:settings", "user:create", "user:delete",
		"role:manage", "venue:create", "venue:delete",
	}
	for _, perm := range adminExcluded {
		assert.False(t, permission.TierAdmin.SatisfiesByFallback([]string{perm}))
		assert.True(t, permission.TierSuperAdmin.SatisfiesByFallback([]string{perm}))
	}
}

func TestValidateUserPermissions_FailClosed(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newTestService(userRepo, new(mockRoleRepository), new(mockVenueRepository), new(mockWorkspaceRepository))
		userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		check := svc.ValidateUserPermissions(context.Background(), "ghost", []string{"venue:read"}, "", "")
		assert.False(t, check.HasPermission)
		assert.Equal(t, "User not found", check.DeniedReason)
	})

	t.Run("inactive user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

		inactive := buildPrincipal(t, principalSpec{
			id: "u-1", workspaceID: "ws-1", roleID: "role-sa", inactive: true,
		})
		userRepo.On("GetByID", mock.Anything, "u-1").Return(inactive, nil)
		roleRepo.On("GetByID", mock.Anything, "role-sa").Return(buildRole(t, "role-sa", permission.TierSuperAdmin), nil)

		check := svc.ValidateUserPermissions(context.Background(), "u-1", []string{"venue:read"}, "", "")
		assert.False(t, check.HasPermission)
		assert.Equal(t, "User account is inactive", check.DeniedReason)
	})

	t.Run("store error is a denial, never an allow", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newTestService(userRepo, new(mockRoleRepository), new(mockVenueRepository), new(mockWorkspaceRepository))
		userRepo.On("GetByID", mock.Anything, "u-1").Return(nil, errors.New("store timeout"))

		check := svc.ValidateUserPermissions(context.Background(), "u-1", []string{"venue:read"}, "", "")
		assert.False(t, check.HasPermission)
		assert.Contains(t, check.DeniedReason, "Permission check failed")
	})
}

func TestValidateUserPermissions_ExplicitGrantBeatsFallback(t *testing.T) {
	userRepo := new(mockUserRepository)
	roleRepo := new(mockRoleRepository)
	svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

	// order:update is outside the operator whitelist but explicitly granted.
	operator := buildPrincipal(t, principalSpec{
		id: "op-1", workspaceID: "ws-1", venueID: "venue-a", roleID: "role-op",
		permissions: []string{"order:update"},
	})
	userRepo.On("GetByID", mock.Anything, "op-1").Return(operator, nil)
	roleRepo.On("GetByID", mock.Anything, "role-op").Return(buildRole(t, "role-op", permission.TierOperator), nil)

	check := svc.ValidateUserPermissions(context.Background(), "op-1", []string{"order:update"}, "venue-a", "")
	assert.True(t, check.HasPermission)
}
