package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dino/internal/domain/permission"
	"dino/internal/domain/user"
	vo "dino/internal/domain/user/valueobjects"
	"dino/internal/domain/venue"
	"dino/internal/domain/workspace"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) CountActiveByVenueRole(ctx context.Context, venueID, roleID string) (int64, error) {
	args := m.Called(ctx, venueID, roleID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoleRepository struct {
	mock.Mock
}

func (m *mockRoleRepository) Create(ctx context.Context, role *permission.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRoleRepository) GetByID(ctx context.Context, id string) (*permission.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permission.Role), args.Error(1)
}

func (m *mockRoleRepository) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permission.Role), args.Error(1)
}

func (m *mockRoleRepository) List(ctx context.Context) ([]*permission.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*permission.Role), args.Error(1)
}

func (m *mockRoleRepository) Update(ctx context.Context, role *permission.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRoleRepository) GetPermissions(ctx context.Context, roleID string) ([]*permission.Permission, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*permission.Permission), args.Error(1)
}

func (m *mockRoleRepository) AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	args := m.Called(ctx, roleID, permissionIDs)
	return args.Error(0)
}

type mockVenueRepository struct {
	mock.Mock
}

func (m *mockVenueRepository) Create(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *mockVenueRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*venue.Venue, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*venue.Venue), args.Error(1)
}

func (m *mockVenueRepository) Update(ctx context.Context, v *venue.Venue) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVenueRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockWorkspaceRepository struct {
	mock.Mock
}

func (m *mockWorkspaceRepository) Create(ctx context.Context, w *workspace.Workspace) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWorkspaceRepository) GetByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Workspace), args.Error(1)
}

func (m *mockWorkspaceRepository) GetByName(ctx context.Context, name string) (*workspace.Workspace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.Workspace), args.Error(1)
}

func (m *mockWorkspaceRepository) Update(ctx context.Context, w *workspace.Workspace) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *mockWorkspaceRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockWorkspaceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type principalSpec struct {
	id          string
	workspaceID string
	venueID     string
	roleID      string
	permissions []string
	venueAccess []string
	inactive    bool
}

func buildPrincipal(t *testing.T, spec principalSpec) *user.User {
	t.Helper()

	email, err := vo.NewEmail(spec.id + "@example.com")
	require.NoError(t, err)

	now := time.Now().UTC()
	u, err := user.ReconstructUser(
		spec.id, spec.workspaceID, spec.venueID,
		email,
		"Test "+spec.id, spec.roleID,
		spec.permissions, spec.venueAccess,
		"$2a$12$hash",
		!spec.inactive, true, false,
		0, nil, "",
		now, now,
	)
	require.NoError(t, err)
	return u
}

func buildRole(t *testing.T, id string, tier permission.Tier) *permission.Role {
	t.Helper()

	now := time.Now().UTC()
	role, err := permission.ReconstructRole(id, tier.String(), tier, "", nil, true, now, now)
	require.NoError(t, err)
	return role
}

func buildVenue(t *testing.T, id, workspaceID string) *venue.Venue {
	t.Helper()

	now := time.Now().UTC()
	v, err := venue.ReconstructVenue(id, workspaceID, "", "Venue "+id, true, nil, now, now)
	require.NoError(t, err)
	return v
}
