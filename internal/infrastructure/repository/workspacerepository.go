package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dino/internal/domain/workspace"
	"dino/internal/infrastructure/persistence/mappers"
	"dino/internal/infrastructure/persistence/models"
	"dino/internal/shared/logger"
)

// WorkspaceRepository implements the workspace store on gorm.
type WorkspaceRepository struct {
	db     *gorm.DB
	mapper *mappers.WorkspaceMapper
	logger logger.Interface
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *gorm.DB, logger logger.Interface) workspace.Repository {
	return &WorkspaceRepository{
		db:     db,
		mapper: mappers.NewWorkspaceMapper(),
		logger: logger,
	}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, ws *workspace.Workspace) error {
	model := r.mapper.ToModel(ws)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create workspace", "name", ws.Name(), "error", err)
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	if ws.ID() == "" {
		if err := ws.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set workspace ID: %w", err)
		}
	}

	r.logger.Infow("workspace created", "id", model.ID, "name", model.Name)
	return nil
}

// GetByID retrieves a workspace by ID; returns (nil, nil) when not found.
func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	var model models.WorkspaceModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get workspace by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	venueIDs, err := r.venueIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&model, venueIDs)
}

// GetByName retrieves a workspace by its unique slug name; returns (nil, nil) when not found.
func (r *WorkspaceRepository) GetByName(ctx context.Context, name string) (*workspace.Workspace, error) {
	var model models.WorkspaceModel

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get workspace by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	venueIDs, err := r.venueIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&model, venueIDs)
}

// Update persists changes to a workspace
func (r *WorkspaceRepository) Update(ctx context.Context, ws *workspace.Workspace) error {
	model := r.mapper.ToModel(ws)

	result := r.db.WithContext(ctx).Model(&models.WorkspaceModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update workspace", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update workspace: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("workspace not found: %s", model.ID)
	}

	return nil
}

// Delete removes a workspace row; used by the provisioning rollback.
func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WorkspaceModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete workspace", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete workspace: %w", result.Error)
	}

	r.logger.Infow("workspace deleted", "id", id)
	return nil
}

// ExistsByName reports whether a workspace with the given slug name exists
func (r *WorkspaceRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.WorkspaceModel{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check workspace name", "name", name, "error", err)
		return false, fmt.Errorf("failed to check workspace name: %w", err)
	}

	return count > 0, nil
}

func (r *WorkspaceRepository) venueIDs(ctx context.Context, workspaceID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.VenueModel{}).
		Where("workspace_id = ?", workspaceID).
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to load workspace venue ids", "workspace_id", workspaceID, "error", err)
		return nil, fmt.Errorf("failed to load workspace venue ids: %w", err)
	}
	return ids, nil
}
