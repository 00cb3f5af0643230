package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dino/internal/domain/permission"
	"dino/internal/infrastructure/persistence/mappers"
	"dino/internal/infrastructure/persistence/models"
	"dino/internal/shared/logger"
)

// PermissionRepository implements the permission catalog store on gorm.
type PermissionRepository struct {
	db     *gorm.DB
	mapper *mappers.PermissionMapper
	logger logger.Interface
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB, logger logger.Interface) permission.PermissionRepository {
	return &PermissionRepository{
		db:     db,
		mapper: mappers.NewPermissionMapper(),
		logger: logger,
	}
}

// Create creates a new permission
func (r *PermissionRepository) Create(ctx context.Context, perm *permission.Permission) error {
	model := r.mapper.ToModel(perm)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create permission", "name", perm.Name(), "error", err)
		return fmt.Errorf("failed to create permission: %w", err)
	}

	if perm.ID() == "" {
		if err := perm.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set permission ID: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a permission by ID; returns (nil, nil) when not found.
func (r *PermissionRepository) GetByID(ctx context.Context, id string) (*permission.Permission, error) {
	var model models.PermissionModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get permission by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByName retrieves a permission by its unique name; returns (nil, nil) when not found.
func (r *PermissionRepository) GetByName(ctx context.Context, name string) (*permission.Permission, error) {
	var model models.PermissionModel

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get permission by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns the full permission catalog
func (r *PermissionRepository) List(ctx context.Context) ([]*permission.Permission, error) {
	var permModels []*models.PermissionModel

	if err := r.db.WithContext(ctx).Order("resource ASC, action ASC").Find(&permModels).Error; err != nil {
		r.logger.Errorw("failed to list permissions", "error", err)
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	return r.mapper.ToEntities(permModels)
}

// GetByIDs retrieves multiple permissions by ID
func (r *PermissionRepository) GetByIDs(ctx context.Context, ids []string) ([]*permission.Permission, error) {
	if len(ids) == 0 {
		return []*permission.Permission{}, nil
	}

	var permModels []*models.PermissionModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&permModels).Error; err != nil {
		r.logger.Errorw("failed to get permissions by IDs", "error", err)
		return nil, fmt.Errorf("failed to get permissions by IDs: %w", err)
	}

	return r.mapper.ToEntities(permModels)
}
