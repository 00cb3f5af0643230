package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"dino/internal/domain/venue"
	"dino/internal/infrastructure/persistence/models"
)

// VenueMapper converts between venue aggregates and persistence models.
type VenueMapper struct{}

func NewVenueMapper() *VenueMapper {
	return &VenueMapper{}
}

func (m *VenueMapper) ToEntity(model *models.VenueModel) (*venue.Venue, error) {
	if model == nil {
		return nil, nil
	}

	var hours venue.OperatingHours
	if len(model.OperatingHours) > 0 {
		if err := json.Unmarshal(model.OperatingHours, &hours); err != nil {
			return nil, fmt.Errorf("failed to decode operating hours: %w", err)
		}
	}

	entity, err := venue.ReconstructVenue(
		model.ID,
		model.WorkspaceID,
		model.AdminID,
		model.Name,
		model.IsActive,
		hours,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct venue entity: %w", err)
	}
	return entity, nil
}

func (m *VenueMapper) ToModel(entity *venue.Venue) (*models.VenueModel, error) {
	if entity == nil {
		return nil, nil
	}

	var hours datatypes.JSON
	if entity.OperatingHours() != nil {
		data, err := json.Marshal(entity.OperatingHours())
		if err != nil {
			return nil, fmt.Errorf("failed to encode operating hours: %w", err)
		}
		hours = datatypes.JSON(data)
	}

	return &models.VenueModel{
		ID:             entity.ID(),
		WorkspaceID:    entity.WorkspaceID(),
		AdminID:        entity.AdminID(),
		Name:           entity.Name(),
		IsActive:       entity.IsActive(),
		OperatingHours: hours,
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *VenueMapper) ToEntities(modelList []*models.VenueModel) ([]*venue.Venue, error) {
	entities := make([]*venue.Venue, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map venue %s: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// TableMapper converts between table entities and models.
type TableMapper struct{}

func NewTableMapper() *TableMapper {
	return &TableMapper{}
}

func (m *TableMapper) ToEntity(model *models.TableModel) (*venue.Table, error) {
	if model == nil {
		return nil, nil
	}

	status, err := venue.NewTableStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", model.ID, err)
	}

	entity, err := venue.ReconstructTable(
		model.ID,
		model.VenueID,
		model.TableNumber,
		model.QRCode,
		status,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct table entity: %w", err)
	}
	return entity, nil
}

func (m *TableMapper) ToModel(entity *venue.Table) *models.TableModel {
	if entity == nil {
		return nil
	}
	return &models.TableModel{
		ID:          entity.ID(),
		VenueID:     entity.VenueID(),
		TableNumber: entity.TableNumber(),
		QRCode:      entity.QRCode(),
		Status:      entity.Status().String(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *TableMapper) ToEntities(modelList []*models.TableModel) ([]*venue.Table, error) {
	entities := make([]*venue.Table, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
