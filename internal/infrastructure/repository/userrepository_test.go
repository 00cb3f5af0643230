package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dino/internal/domain/user"
	vo "dino/internal/domain/user/valueobjects"
	"dino/internal/shared/logger"
)

func createTestUser(t *testing.T, email, venueID, roleID string) *user.User {
	addr, err := vo.NewEmail(email)
	require.NoError(t, err)

	u, err := user.NewUser("workspace-1", venueID, addr, "Test User", roleID, "$2a$12$hash")
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	u := createTestUser(t, "alice@example.com", "venue-1", "role-admin")
	u.SetPermissions([]string{"venue:read", "order:read"})
	u.GrantVenueAccess("venue-1")

	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID())

	t.Run("round trips through the store", func(t *testing.T) {
		found, err := repo.GetByID(ctx, u.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "alice@example.com", found.Email().String())
		assert.Equal(t, []string{"venue:read", "order:read"}, found.Permissions())
		assert.True(t, found.HasVenueAccess("venue-1"))
	})

	t.Run("lookup by email", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID(), found.ID())
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		dup := createTestUser(t, "alice@example.com", "venue-2", "role-operator")
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestUserRepository_CountActiveByVenueRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	admin := createTestUser(t, "admin@example.com", "venue-1", "role-admin")
	require.NoError(t, repo.Create(ctx, admin))

	otherVenue := createTestUser(t, "admin2@example.com", "venue-2", "role-admin")
	require.NoError(t, repo.Create(ctx, otherVenue))

	operator := createTestUser(t, "op@example.com", "venue-1", "role-operator")
	require.NoError(t, repo.Create(ctx, operator))

	count, err := repo.CountActiveByVenueRole(ctx, "venue-1", "role-admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	t.Run("deactivated users are not counted", func(t *testing.T) {
		admin.Deactivate()
		require.NoError(t, repo.Update(ctx, admin))

		count, err := repo.CountActiveByVenueRole(ctx, "venue-1", "role-admin")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewLogger())
	ctx := context.Background()

	u := createTestUser(t, "gone@example.com", "", "role-operator")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u.ID()))

	found, err := repo.GetByID(ctx, u.ID())
	assert.NoError(t, err)
	assert.Nil(t, found)
}
