package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dino/internal/domain/venue"
	"dino/internal/infrastructure/persistence/models"
	"dino/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.WorkspaceModel{},
		&models.VenueModel{},
		&models.TableModel{},
		&models.UserModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.RolePermissionModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestTable(t *testing.T, venueID string, number int) *venue.Table {
	tbl, err := venue.NewTable(venueID, number)
	require.NoError(t, err)
	return tbl
}

func TestTableRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create table successfully", func(t *testing.T) {
		tbl := createTestTable(t, "venue-1", 1)
		tbl.SetQRCode("sealed-token")

		err := repo.Create(ctx, tbl)
		assert.NoError(t, err)
		assert.NotEmpty(t, tbl.ID())
	})

	t.Run("duplicate number in same venue fails", func(t *testing.T) {
		tbl1 := createTestTable(t, "venue-2", 7)
		require.NoError(t, repo.Create(ctx, tbl1))

		tbl2 := createTestTable(t, "venue-2", 7)
		err := repo.Create(ctx, tbl2)
		assert.Error(t, err)
	})

	t.Run("same number in different venues is allowed", func(t *testing.T) {
		tbl1 := createTestTable(t, "venue-3", 4)
		require.NoError(t, repo.Create(ctx, tbl1))

		tbl2 := createTestTable(t, "venue-4", 4)
		err := repo.Create(ctx, tbl2)
		assert.NoError(t, err)
	})
}

func TestTableRepository_GetByVenueAndNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db, logger.NewLogger())
	ctx := context.Background()

	tbl := createTestTable(t, "venue-1", 12)
	tbl.SetQRCode("token-12")
	require.NoError(t, repo.Create(ctx, tbl))

	t.Run("existing table is found", func(t *testing.T) {
		found, err := repo.GetByVenueAndNumber(ctx, "venue-1", 12)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tbl.ID(), found.ID())
		assert.Equal(t, "token-12", found.QRCode())
		assert.Equal(t, venue.TableStatusAvailable, found.Status())
	})

	t.Run("missing table returns nil without error", func(t *testing.T) {
		found, err := repo.GetByVenueAndNumber(ctx, "venue-1", 99)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTableRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db, logger.NewLogger())
	ctx := context.Background()

	tbl := createTestTable(t, "venue-1", 3)
	tbl.SetQRCode("original")
	require.NoError(t, repo.Create(ctx, tbl))

	t.Run("status and qr code are updated", func(t *testing.T) {
		require.NoError(t, tbl.UpdateStatus(venue.TableStatusOccupied))
		tbl.SetQRCode("rotated")

		err := repo.Update(ctx, tbl)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, tbl.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, venue.TableStatusOccupied, found.Status())
		assert.Equal(t, "rotated", found.QRCode())
	})

	t.Run("update of unknown table fails", func(t *testing.T) {
		ghost := createTestTable(t, "venue-1", 42)
		require.NoError(t, ghost.SetID("missing-id"))

		err := repo.Update(ctx, ghost)
		assert.Error(t, err)
	})
}

func TestTableRepository_ListByVenue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db, logger.NewLogger())
	ctx := context.Background()

	for _, n := range []int{3, 1, 2} {
		require.NoError(t, repo.Create(ctx, createTestTable(t, "venue-1", n)))
	}
	require.NoError(t, repo.Create(ctx, createTestTable(t, "venue-2", 1)))

	tables, err := repo.ListByVenue(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, 1, tables[0].TableNumber())
	assert.Equal(t, 2, tables[1].TableNumber())
	assert.Equal(t, 3, tables[2].TableNumber())
}

func TestTableRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db, logger.NewLogger())
	ctx := context.Background()

	tbl := createTestTable(t, "venue-1", 5)
	require.NoError(t, repo.Create(ctx, tbl))

	require.NoError(t, repo.Delete(ctx, tbl.ID()))

	found, err := repo.GetByID(ctx, tbl.ID())
	assert.NoError(t, err)
	assert.Nil(t, found)

	assert.Error(t, repo.Delete(ctx, tbl.ID()))
}
