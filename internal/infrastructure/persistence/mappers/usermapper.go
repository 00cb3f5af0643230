package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"dino/internal/domain/user"
	vo "dino/internal/domain/user/valueobjects"
	"dino/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	permissions, err := stringSliceFromJSON(model.Permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	venueAccess, err := stringSliceFromJSON(model.VenueAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to decode venue access: %w", err)
	}

	venueID := ""
	if model.VenueID != nil {
		venueID = *model.VenueID
	}

	entity, err := user.ReconstructUser(
		model.ID,
		model.WorkspaceID,
		venueID,
		email,
		model.FullName,
		model.RoleID,
		permissions,
		venueAccess,
		model.HashedPassword,
		model.IsActive,
		model.IsVerified,
		model.IsOwner,
		model.LoginCount,
		model.LastLoginAt,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}

	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	permissions, err := stringSliceToJSON(entity.Permissions())
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	venueAccess, err := stringSliceToJSON(entity.VenueAccess())
	if err != nil {
		return nil, fmt.Errorf("failed to encode venue access: %w", err)
	}

	var venueID *string
	if entity.VenueID() != "" {
		v := entity.VenueID()
		venueID = &v
	}

	return &models.UserModel{
		ID:             entity.ID(),
		WorkspaceID:    entity.WorkspaceID(),
		VenueID:        venueID,
		Email:          entity.Email().String(),
		FullName:       entity.FullName(),
		RoleID:         entity.RoleID(),
		Permissions:    permissions,
		VenueAccess:    venueAccess,
		HashedPassword: entity.HashedPassword(),
		IsActive:       entity.IsActive(),
		IsVerified:     entity.IsVerified(),
		IsOwner:        entity.IsOwner(),
		LoginCount:     entity.LoginCount(),
		LastLoginAt:    entity.LastLoginAt(),
		CreatedBy:      entity.CreatedBy(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *UserMapperImpl) ToEntities(modelList []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map user %s: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func stringSliceFromJSON(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringSliceToJSON(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
