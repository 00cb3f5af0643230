package table

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dino/internal/application/access"
	"dino/internal/domain/permission"
	domainuser "dino/internal/domain/user"
	uservo "dino/internal/domain/user/valueobjects"
	"dino/internal/domain/venue"
	"dino/internal/infrastructure/qr"
	"dino/internal/shared/errors"
	"dino/internal/shared/logger"
)

type mockTableRepository struct {
	mock.Mock
}

func (m *mockTableRepository) Create(ctx context.Context, t *venue.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTableRepository) GetByID(ctx context.Context, id string) (*venue.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Table), args.Error(1)
}

func (m *mockTableRepository) GetByVenueAndNumber(ctx context.Context, venueID string, tableNumber int) (*venue.Table, error) {
	args := m.Called(ctx, venueID, tableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Table), args.Error(1)
}

func (m *mockTableRepository) ListByVenue(ctx context.Context, venueID string) ([]*venue.Table, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*venue.Table), args.Error(1)
}

func (m *mockTableRepository) Update(ctx context.Context, t *venue.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTableRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
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

const testKey = "0123456789abcdef0123456789abcdef"

func buildTestVenue(t *testing.T, id, workspaceID string, active bool) *venue.Venue {
	t.Helper()
	now := time.Now().UTC()
	v, err := venue.ReconstructVenue(id, workspaceID, "", "Venue "+id, active, nil, now, now)
	require.NoError(t, err)
	return v
}

func buildTestTable(t *testing.T, id, venueID string, number int, status venue.TableStatus) *venue.Table {
	t.Helper()
	now := time.Now().UTC()
	tbl, err := venue.ReconstructTable(id, venueID, number, "", status, now, now)
	require.NoError(t, err)
	return tbl
}

func newTestService(tableRepo *mockTableRepository, venueRepo *mockVenueRepository) *Service {
	return NewService(tableRepo, venueRepo, qr.NewCodec(testKey), logger.NewLogger())
}

func buildTestPrincipal(t *testing.T, workspaceID, venueID string, tier permission.Tier, venueAccess []string) access.Principal {
	t.Helper()
	addr, err := uservo.NewEmail("principal@example.com")
	require.NoError(t, err)
	now := time.Now().UTC()
	u, err := domainuser.ReconstructUser("principal-1", workspaceID, venueID, addr, "Principal", "role-x",
		nil, venueAccess, "hash", true, true, false, 0, nil, "", now, now)
	require.NoError(t, err)
	return access.Principal{User: u, Tier: tier}
}

func TestCreateTable(t *testing.T) {
	t.Run("mints and stores a verifiable token", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		svc := newTestService(tableRepo, venueRepo)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", true), nil)
		tableRepo.On("GetByVenueAndNumber", mock.Anything, "venue-1", 5).Return(nil, nil)
		tableRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			// The row reaches the store with its id and token already set;
			// no follow-up write is needed and a failed insert leaves no
			// tokenless table behind.
			stored := args.Get(1).(*venue.Table)
			assert.NotEmpty(t, stored.ID())
			assert.NotEmpty(t, stored.QRCode())
		}).Return(nil)

		tbl, err := svc.CreateTable(context.Background(), "venue-1", 5)
		require.NoError(t, err)
		require.NotEmpty(t, tbl.QRCode())

		payload, err := qr.NewCodec(testKey).Verify(tbl.QRCode())
		require.NoError(t, err)
		assert.Equal(t, "venue-1", payload.VenueID)
		assert.Equal(t, tbl.ID(), payload.TableID)
		assert.Equal(t, 5, payload.TableNumber)
		tableRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("duplicate table number is a conflict", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		svc := newTestService(tableRepo, venueRepo)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", true), nil)
		existing := buildTestTable(t, "table-0", "venue-1", 5, venue.TableStatusAvailable)
		tableRepo.On("GetByVenueAndNumber", mock.Anything, "venue-1", 5).Return(existing, nil)

		_, err := svc.CreateTable(context.Background(), "venue-1", 5)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("unknown venue is not found", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		svc := newTestService(tableRepo, venueRepo)

		venueRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.CreateTable(context.Background(), "ghost", 1)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestRegenerateQR(t *testing.T) {
	tableRepo := new(mockTableRepository)
	svc := newTestService(tableRepo, new(mockVenueRepository))

	tbl := buildTestTable(t, "table-1", "venue-1", 3, venue.TableStatusAvailable)
	oldToken, err := qr.NewCodec(testKey).Mint("venue-1", "table-1", 3)
	require.NoError(t, err)
	tbl.SetQRCode(oldToken)

	tableRepo.On("GetByID", mock.Anything, "table-1").Return(tbl, nil)
	tableRepo.On("Update", mock.Anything, tbl).Return(nil)

	regenerated, err := svc.RegenerateQR(context.Background(), "venue-1", "table-1")
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, regenerated.QRCode())

	payload, err := qr.NewCodec(testKey).Verify(regenerated.QRCode())
	require.NoError(t, err)
	assert.Equal(t, "table-1", payload.TableID)

	_, err = svc.RegenerateQR(context.Background(), "venue-2", "table-1")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestListTables(t *testing.T) {
	tables := []*venue.Table{
		buildTestTable(t, "table-1", "venue-1", 1, venue.TableStatusAvailable),
		buildTestTable(t, "table-2", "venue-1", 2, venue.TableStatusOccupied),
	}

	setup := func(t *testing.T, venueWorkspace string) *Service {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", venueWorkspace, true), nil)
		tableRepo.On("ListByVenue", mock.Anything, "venue-1").Return(tables, nil)
		return newTestService(tableRepo, venueRepo)
	}

	t.Run("admin with venue access sees the full list", func(t *testing.T) {
		svc := setup(t, "ws-1")
		p := buildTestPrincipal(t, "ws-1", "", permission.TierAdmin, []string{"venue-1"})

		visible, err := svc.ListTables(context.Background(), p, "venue-1")
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("operator assigned elsewhere sees nothing", func(t *testing.T) {
		svc := setup(t, "ws-1")
		p := buildTestPrincipal(t, "ws-1", "venue-2", permission.TierOperator, nil)

		visible, err := svc.ListTables(context.Background(), p, "venue-1")
		require.NoError(t, err)
		assert.Empty(t, visible)
	})

	t.Run("superadmin is bounded by the workspace", func(t *testing.T) {
		svc := setup(t, "ws-other")
		p := buildTestPrincipal(t, "ws-1", "", permission.TierSuperAdmin, nil)

		visible, err := svc.ListTables(context.Background(), p, "venue-1")
		require.NoError(t, err)
		assert.Empty(t, visible)
	})

	t.Run("unknown venue is not found", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		venueRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)
		svc := newTestService(tableRepo, venueRepo)

		p := buildTestPrincipal(t, "ws-1", "", permission.TierSuperAdmin, nil)
		_, err := svc.ListTables(context.Background(), p, "ghost")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestUpdateTableStatus(t *testing.T) {
	t.Run("transitions to the requested status", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		svc := newTestService(tableRepo, new(mockVenueRepository))

		tbl := buildTestTable(t, "table-1", "venue-1", 3, venue.TableStatusAvailable)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(tbl, nil)
		tableRepo.On("Update", mock.Anything, tbl).Return(nil)

		updated, err := svc.UpdateStatus(context.Background(), "venue-1", "table-1", venue.TableStatusOccupied)
		require.NoError(t, err)
		assert.Equal(t, venue.TableStatusOccupied, updated.Status())
	})

	t.Run("table in another venue is not found", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		svc := newTestService(tableRepo, new(mockVenueRepository))

		tbl := buildTestTable(t, "table-1", "venue-1", 3, venue.TableStatusAvailable)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(tbl, nil)

		_, err := svc.UpdateStatus(context.Background(), "venue-2", "table-1", venue.TableStatusOccupied)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
		tableRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		tableRepo := new(mockTableRepository)
		svc := newTestService(tableRepo, new(mockVenueRepository))

		tbl := buildTestTable(t, "table-1", "venue-1", 3, venue.TableStatusAvailable)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(tbl, nil)

		_, err := svc.UpdateStatus(context.Background(), "venue-1", "table-1", venue.TableStatus("smoking"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestResolveQR(t *testing.T) {
	codec := qr.NewCodec(testKey)

	setup := func(t *testing.T) (*mockTableRepository, *mockVenueRepository, *Service) {
		tableRepo := new(mockTableRepository)
		venueRepo := new(mockVenueRepository)
		return tableRepo, venueRepo, newTestService(tableRepo, venueRepo)
	}

	t.Run("valid token resolves to the table", func(t *testing.T) {
		tableRepo, venueRepo, svc := setup(t)

		token, err := codec.Mint("venue-1", "table-1", 7)
		require.NoError(t, err)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", true), nil)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(buildTestTable(t, "table-1", "venue-1", 7, venue.TableStatusAvailable), nil)

		resolved, err := svc.ResolveQR(context.Background(), "venue-1", token)
		require.NoError(t, err)
		assert.Equal(t, "table-1", resolved.TableID)
		assert.Equal(t, 7, resolved.TableNumber)
	})

	t.Run("token for another venue is invalid, not forbidden", func(t *testing.T) {
		_, _, svc := setup(t)

		token, err := codec.Mint("venue-2", "table-1", 7)
		require.NoError(t, err)

		_, err = svc.ResolveQR(context.Background(), "venue-1", token)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeBadRequest))
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.ResolveQR(context.Background(), "venue-1", "not-a-token")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeBadRequest))
	})

	t.Run("inactive venue rejects resolution", func(t *testing.T) {
		_, venueRepo, svc := setup(t)

		token, err := codec.Mint("venue-1", "table-1", 7)
		require.NoError(t, err)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", false), nil)

		_, err = svc.ResolveQR(context.Background(), "venue-1", token)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeBadRequest))
	})

	t.Run("out of service table refuses orders", func(t *testing.T) {
		tableRepo, venueRepo, svc := setup(t)

		token, err := codec.Mint("venue-1", "table-1", 7)
		require.NoError(t, err)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", true), nil)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(buildTestTable(t, "table-1", "venue-1", 7, venue.TableStatusOutOfService), nil)

		_, err = svc.ResolveQR(context.Background(), "venue-1", token)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("stale token after table deletion is invalid", func(t *testing.T) {
		tableRepo, venueRepo, svc := setup(t)

		token, err := codec.Mint("venue-1", "table-1", 7)
		require.NoError(t, err)

		venueRepo.On("GetByID", mock.Anything, "venue-1").Return(buildTestVenue(t, "venue-1", "ws-1", true), nil)
		tableRepo.On("GetByID", mock.Anything, "table-1").Return(nil, nil)

		_, err = svc.ResolveQR(context.Background(), "venue-1", token)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeBadRequest))
	})
}
