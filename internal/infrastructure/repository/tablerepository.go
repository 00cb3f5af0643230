package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dino/internal/domain/venue"
	"dino/internal/infrastructure/persistence/mappers"
	"dino/internal/infrastructure/persistence/models"
	"dino/internal/shared/logger"
)

// TableRepository implements the table store on gorm. The composite unique
// index on (venue_id, table_number) backs the per-venue number constraint.
type TableRepository struct {
	db     *gorm.DB
	mapper *mappers.TableMapper
	logger logger.Interface
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB, logger logger.Interface) venue.TableRepository {
	return &TableRepository{
		db:     db,
		mapper: mappers.NewTableMapper(),
		logger: logger,
	}
}

// Create creates a new table
func (r *TableRepository) Create(ctx context.Context, t *venue.Table) error {
	model := r.mapper.ToModel(t)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create table", "venue_id", model.VenueID, "table_number", model.TableNumber, "error", err)
		return fmt.Errorf("failed to create table: %w", err)
	}

	if t.ID() == "" {
		if err := t.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set table ID: %w", err)
		}
	}

	r.logger.Infow("table created", "id", model.ID, "venue_id", model.VenueID, "table_number", model.TableNumber)
	return nil
}

// GetByID retrieves a table by ID; returns (nil, nil) when not found.
func (r *TableRepository) GetByID(ctx context.Context, id string) (*venue.Table, error) {
	var model models.TableModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get table by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByVenueAndNumber retrieves a table by its number inside a venue;
// returns (nil, nil) when not found.
func (r *TableRepository) GetByVenueAndNumber(ctx context.Context, venueID string, tableNumber int) (*venue.Table, error) {
	var model models.TableModel

	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND table_number = ?", venueID, tableNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get table by venue and number", "venue_id", venueID, "table_number", tableNumber, "error", err)
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByVenue returns all tables in a venue ordered by table number
func (r *TableRepository) ListByVenue(ctx context.Context, venueID string) ([]*venue.Table, error) {
	var tableModels []*models.TableModel

	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("table_number ASC").
		Find(&tableModels).Error
	if err != nil {
		r.logger.Errorw("failed to list tables by venue", "venue_id", venueID, "error", err)
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return r.mapper.ToEntities(tableModels)
}

// Update persists changes to a table
func (r *TableRepository) Update(ctx context.Context, t *venue.Table) error {
	model := r.mapper.ToModel(t)

	result := r.db.WithContext(ctx).Model(&models.TableModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "venue_id", "table_number", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update table", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update table: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("table not found: %s", model.ID)
	}

	return nil
}

// Delete removes a table
func (r *TableRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TableModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete table", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete table: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("table not found: %s", id)
	}

	r.logger.Infow("table deleted", "id", id)
	return nil
}
