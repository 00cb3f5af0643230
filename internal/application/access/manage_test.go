package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dino/internal/domain/permission"
	"dino/internal/domain/workspace"
	sharederrors "dino/internal/shared/errors"
)

func TestCanManageUser(t *testing.T) {
	roleAdmin := buildRole(t, "role-ad", permission.TierAdmin)
	roleOperator := buildRole(t, "role-op", permission.TierOperator)
	roleSuper := buildRole(t, "role-sa", permission.TierSuperAdmin)

	setup := func(t *testing.T) (*mockUserRepository, *mockRoleRepository, *Service) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByID", mock.Anything, "role-ad").Return(roleAdmin, nil).Maybe()
		roleRepo.On("GetByID", mock.Anything, "role-op").Return(roleOperator, nil).Maybe()
		roleRepo.On("GetByID", mock.Anything, "role-sa").Return(roleSuper, nil).Maybe()
		return userRepo, roleRepo, newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))
	}

	t.Run("admin manages operator in accessible venue", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		admin := buildPrincipal(t, principalSpec{id: "ad", workspaceID: "ws-1", roleID: "role-ad", venueAccess: []string{"venue-a"}})
		op := buildPrincipal(t, principalSpec{id: "op", workspaceID: "ws-1", venueID: "venue-a", roleID: "role-op"})
		userRepo.On("GetByID", mock.Anything, "ad").Return(admin, nil)
		userRepo.On("GetByID", mock.Anything, "op").Return(op, nil)

		ok, err := svc.CanManageUser(context.Background(), "ad", "op")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("admin cannot manage operator outside venue access", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		admin := buildPrincipal(t, principalSpec{id: "ad", workspaceID: "ws-1", roleID: "role-ad", venueAccess: []string{"venue-a"}})
		op := buildPrincipal(t, principalSpec{id: "op", workspaceID: "ws-1", venueID: "venue-b", roleID: "role-op"})
		userRepo.On("GetByID", mock.Anything, "ad").Return(admin, nil)
		userRepo.On("GetByID", mock.Anything, "op").Return(op, nil)

		ok, err := svc.CanManageUser(context.Background(), "ad", "op")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin cannot manage admin", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		a1 := buildPrincipal(t, principalSpec{id: "a1", workspaceID: "ws-1", roleID: "role-ad"})
		a2 := buildPrincipal(t, principalSpec{id: "a2", workspaceID: "ws-1", roleID: "role-ad"})
		userRepo.On("GetByID", mock.Anything, "a1").Return(a1, nil)
		userRepo.On("GetByID", mock.Anything, "a2").Return(a2, nil)

		ok, err := svc.CanManageUser(context.Background(), "a1", "a2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cross workspace always refused", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		super := buildPrincipal(t, principalSpec{id: "sa", workspaceID: "ws-1", roleID: "role-sa"})
		op := buildPrincipal(t, principalSpec{id: "op", workspaceID: "ws-2", venueID: "venue-x", roleID: "role-op"})
		userRepo.On("GetByID", mock.Anything, "sa").Return(super, nil)
		userRepo.On("GetByID", mock.Anything, "op").Return(op, nil)

		ok, err := svc.CanManageUser(context.Background(), "sa", "op")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("superadmin manages admin", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		super := buildPrincipal(t, principalSpec{id: "sa", workspaceID: "ws-1", roleID: "role-sa"})
		admin := buildPrincipal(t, principalSpec{id: "ad", workspaceID: "ws-1", roleID: "role-ad"})
		userRepo.On("GetByID", mock.Anything, "sa").Return(super, nil)
		userRepo.On("GetByID", mock.Anything, "ad").Return(admin, nil)

		ok, err := svc.CanManageUser(context.Background(), "sa", "ad")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing target refused without error", func(t *testing.T) {
		userRepo, _, svc := setup(t)
		super := buildPrincipal(t, principalSpec{id: "sa", workspaceID: "ws-1", roleID: "role-sa"})
		userRepo.On("GetByID", mock.Anything, "sa").Return(super, nil)
		userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		ok, err := svc.CanManageUser(context.Background(), "sa", "ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidateVenueRoleConstraint(t *testing.T) {
	roleAdmin := buildRole(t, "role-ad", permission.TierAdmin)

	t.Run("second active admin is a conflict", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))
		roleRepo.On("GetByName", mock.Anything, "admin").Return(roleAdmin, nil)
		userRepo.On("CountActiveByVenueRole", mock.Anything, "venue-a", "role-ad").Return(int64(1), nil)

		err := svc.ValidateVenueRoleConstraint(context.Background(), "venue-a", permission.TierAdmin)
		require.Error(t, err)
		assert.True(t, sharederrors.IsType(err, sharederrors.ErrorTypeConflict))
	})

	t.Run("first admin is allowed", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))
		roleRepo.On("GetByName", mock.Anything, "admin").Return(roleAdmin, nil)
		userRepo.On("CountActiveByVenueRole", mock.Anything, "venue-a", "role-ad").Return(int64(0), nil)

		assert.NoError(t, svc.ValidateVenueRoleConstraint(context.Background(), "venue-a", permission.TierAdmin))
	})

	t.Run("not enforced for other tiers", func(t *testing.T) {
		svc := newTestService(new(mockUserRepository), new(mockRoleRepository), new(mockVenueRepository), new(mockWorkspaceRepository))

		assert.NoError(t, svc.ValidateVenueRoleConstraint(context.Background(), "venue-a", permission.TierOperator))
		assert.NoError(t, svc.ValidateVenueRoleConstraint(context.Background(), "venue-a", permission.TierSuperAdmin))
	})
}

func TestAccessibleVenues(t *testing.T) {
	roleSuper := buildRole(t, "role-sa", permission.TierSuperAdmin)
	roleAdmin := buildRole(t, "role-ad", permission.TierAdmin)
	roleOperator := buildRole(t, "role-op", permission.TierOperator)

	t.Run("superadmin sees all workspace venues", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		wsRepo := new(mockWorkspaceRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), wsRepo)

		super := buildPrincipal(t, principalSpec{id: "sa", workspaceID: "ws-1", roleID: "role-sa"})
		userRepo.On("GetByID", mock.Anything, "sa").Return(super, nil)
		roleRepo.On("GetByID", mock.Anything, "role-sa").Return(roleSuper, nil)

		ws, err := workspace.ReconstructWorkspace("ws-1", "acme-x1", "Acme", "sa",
			[]string{"venue-a", "venue-b"}, true, super.CreatedAt(), super.UpdatedAt())
		require.NoError(t, err)
		wsRepo.On("GetByID", mock.Anything, "ws-1").Return(ws, nil)

		venues, err := svc.AccessibleVenues(context.Background(), "sa")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"venue-a", "venue-b"}, venues)
	})

	t.Run("admin sees venue access list", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

		admin := buildPrincipal(t, principalSpec{id: "ad", workspaceID: "ws-1", roleID: "role-ad", venueAccess: []string{"venue-a", "venue-c"}})
		userRepo.On("GetByID", mock.Anything, "ad").Return(admin, nil)
		roleRepo.On("GetByID", mock.Anything, "role-ad").Return(roleAdmin, nil)

		venues, err := svc.AccessibleVenues(context.Background(), "ad")
		require.NoError(t, err)
		assert.Equal(t, []string{"venue-a", "venue-c"}, venues)
	})

	t.Run("operator sees only the assigned venue", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		roleRepo := new(mockRoleRepository)
		svc := newTestService(userRepo, roleRepo, new(mockVenueRepository), new(mockWorkspaceRepository))

		op := buildPrincipal(t, principalSpec{id: "op", workspaceID: "ws-1", venueID: "venue-a", roleID: "role-op"})
		userRepo.On("GetByID", mock.Anything, "op").Return(op, nil)
		roleRepo.On("GetByID", mock.Anything, "role-op").Return(roleOperator, nil)

		venues, err := svc.AccessibleVenues(context.Background(), "op")
		require.NoError(t, err)
		assert.Equal(t, []string{"venue-a"}, venues)
	})

	t.Run("missing user yields empty list", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		svc := newTestService(userRepo, new(mockRoleRepository), new(mockVenueRepository), new(mockWorkspaceRepository))
		userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		venues, err := svc.AccessibleVenues(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Empty(t, venues)
	})
}
