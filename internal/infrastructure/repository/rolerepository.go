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

// RoleRepository implements the role repository interface on gorm. Role to
// permission assignments live in the role_permissions join table.
type RoleRepository struct {
	db         *gorm.DB
	mapper     *mappers.RoleMapper
	permMapper *mappers.PermissionMapper
	logger     logger.Interface
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB, logger logger.Interface) permission.RoleRepository {
	return &RoleRepository{
		db:         db,
		mapper:     mappers.NewRoleMapper(),
		permMapper: mappers.NewPermissionMapper(),
		logger:     logger,
	}
}

// Create creates a new role together with its permission assignments
func (r *RoleRepository) Create(ctx context.Context, role *permission.Role) error {
	model := r.mapper.ToModel(role)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceRolePermissions(tx, model.ID, role.PermissionIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to create role", "name", role.Name(), "error", err)
		return fmt.Errorf("failed to create role: %w", err)
	}

	if role.ID() == "" {
		if err := role.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set role ID: %w", err)
		}
	}

	r.logger.Infow("role created", "id", model.ID, "name", model.Name)
	return nil
}

// GetByID retrieves a role by ID; returns (nil, nil) when not found.
func (r *RoleRepository) GetByID(ctx context.Context, id string) (*permission.Role, error) {
	var model models.RoleModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get role by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	permissionIDs, err := r.permissionIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&model, permissionIDs)
}

// GetByName retrieves a role by its unique name; returns (nil, nil) when not found.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	var model models.RoleModel

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get role by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	permissionIDs, err := r.permissionIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&model, permissionIDs)
}

// List returns all roles ordered by tier rank
func (r *RoleRepository) List(ctx context.Context) ([]*permission.Role, error) {
	var roleModels []*models.RoleModel

	if err := r.db.WithContext(ctx).Order("tier_rank ASC").Find(&roleModels).Error; err != nil {
		r.logger.Errorw("failed to list roles", "error", err)
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*permission.Role, 0, len(roleModels))
	for _, model := range roleModels {
		permissionIDs, err := r.permissionIDs(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		entity, err := r.mapper.ToEntity(model, permissionIDs)
		if err != nil {
			return nil, err
		}
		roles = append(roles, entity)
	}
	return roles, nil
}

// Update persists changes to a role and rewrites its permission assignments
func (r *RoleRepository) Update(ctx context.Context, role *permission.Role) error {
	model := r.mapper.ToModel(role)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RoleModel{}).
			Where("id = ?", model.ID).
			Select("*").Omit("id", "created_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("role not found: %s", model.ID)
		}
		return replaceRolePermissions(tx, model.ID, role.PermissionIDs())
	})
	if err != nil {
		r.logger.Errorw("failed to update role", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

// GetPermissions resolves the permission entities assigned to a role
func (r *RoleRepository) GetPermissions(ctx context.Context, roleID string) ([]*permission.Permission, error) {
	var permModels []*models.PermissionModel

	err := r.db.WithContext(ctx).Model(&models.PermissionModel{}).
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Find(&permModels).Error
	if err != nil {
		r.logger.Errorw("failed to get role permissions", "role_id", roleID, "error", err)
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}

	return r.permMapper.ToEntities(permModels)
}

// AssignPermissions replaces the permission set assigned to a role
func (r *RoleRepository) AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceRolePermissions(tx, roleID, permissionIDs)
	})
	if err != nil {
		r.logger.Errorw("failed to assign role permissions", "role_id", roleID, "error", err)
		return fmt.Errorf("failed to assign role permissions: %w", err)
	}

	r.logger.Infow("role permissions assigned", "role_id", roleID, "count", len(permissionIDs))
	return nil
}

func (r *RoleRepository) permissionIDs(ctx context.Context, roleID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.RolePermissionModel{}).
		Where("role_id = ?", roleID).
		Pluck("permission_id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to load role permission ids", "role_id", roleID, "error", err)
		return nil, fmt.Errorf("failed to load role permission ids: %w", err)
	}
	return ids, nil
}

func replaceRolePermissions(tx *gorm.DB, roleID string, permissionIDs []string) error {
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}
	rows := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		rows = append(rows, models.RolePermissionModel{RoleID: roleID, PermissionID: pid})
	}
	return tx.Create(&rows).Error
}
