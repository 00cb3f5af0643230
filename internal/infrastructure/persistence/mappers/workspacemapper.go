package mappers

import (
	"fmt"

	"dino/internal/domain/workspace"
	"dino/internal/infrastructure/persistence/models"
)

// WorkspaceMapper converts between workspace entities and models. Venue ids
// are derived from the venues table, so ToEntity takes them separately.
type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(model *models.WorkspaceModel, venueIDs []string) (*workspace.Workspace, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := workspace.ReconstructWorkspace(
		model.ID,
		model.Name,
		model.DisplayName,
		model.OwnerID,
		venueIDs,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct workspace entity: %w", err)
	}
	return entity, nil
}

func (m *WorkspaceMapper) ToModel(entity *workspace.Workspace) *models.WorkspaceModel {
	if entity == nil {
		return nil
	}
	return &models.WorkspaceModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		DisplayName: entity.DisplayName(),
		OwnerID:     entity.OwnerID(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}
