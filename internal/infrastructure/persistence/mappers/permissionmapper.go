package mappers

import (
	"fmt"

	"dino/internal/domain/permission"
	vo "dino/internal/domain/permission/valueobjects"
	"dino/internal/infrastructure/persistence/models"
)

// RoleMapper converts between role domain entities and persistence models.
// The permission id list lives in the join table, so ToEntity takes it as a
// separate argument.
type RoleMapper struct{}

func NewRoleMapper() *RoleMapper {
	return &RoleMapper{}
}

func (m *RoleMapper) ToEntity(model *models.RoleModel, permissionIDs []string) (*permission.Role, error) {
	if model == nil {
		return nil, nil
	}

	tier := permission.ParseTier(model.Name)

	entity, err := permission.ReconstructRole(
		model.ID,
		model.Name,
		tier,
		model.Description,
		permissionIDs,
		model.IsSystemRole,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct role entity: %w", err)
	}
	return entity, nil
}

func (m *RoleMapper) ToModel(entity *permission.Role) *models.RoleModel {
	if entity == nil {
		return nil
	}
	return &models.RoleModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		TierRank:     entity.Tier().Rank(),
		Description:  entity.Description(),
		IsSystemRole: entity.IsSystemRole(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

// PermissionMapper converts between permission entities and models.
type PermissionMapper struct{}

func NewPermissionMapper() *PermissionMapper {
	return &PermissionMapper{}
}

func (m *PermissionMapper) ToEntity(model *models.PermissionModel) (*permission.Permission, error) {
	if model == nil {
		return nil, nil
	}

	resource, err := vo.NewResource(model.Resource)
	if err != nil {
		return nil, fmt.Errorf("permission %s: %w", model.ID, err)
	}
	action, err := vo.NewAction(model.Action)
	if err != nil {
		return nil, fmt.Errorf("permission %s: %w", model.ID, err)
	}
	scope, err := vo.NewScope(model.Scope)
	if err != nil {
		return nil, fmt.Errorf("permission %s: %w", model.ID, err)
	}

	entity, err := permission.ReconstructPermission(
		model.ID,
		model.Name,
		resource,
		action,
		scope,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct permission entity: %w", err)
	}
	return entity, nil
}

func (m *PermissionMapper) ToModel(entity *permission.Permission) *models.PermissionModel {
	if entity == nil {
		return nil
	}
	return &models.PermissionModel{
		ID:        entity.ID(),
		Name:      entity.Name(),
		Resource:  entity.Resource().String(),
		Action:    entity.Action().String(),
		Scope:     entity.Scope().String(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *PermissionMapper) ToEntities(modelList []*models.PermissionModel) ([]*permission.Permission, error) {
	entities := make([]*permission.Permission, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
