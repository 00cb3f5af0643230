package permission

import (
	"fmt"
	"time"

	vo "dino/internal/domain/permission/valueobjects"
)

// Permission is a named (resource, action, scope) triple. Names are unique
// and follow the "resource:action" convention.
type Permission struct {
	id        string
	name      string
	resource  vo.Resource
	action    vo.Action
	scope     vo.Scope
	createdAt time.Time
	updatedAt time.Time
}

func NewPermission(name string, resource vo.Resource, action vo.Action, scope vo.Scope) (*Permission, error) {
	if name == "" {
		return nil, fmt.Errorf("permission name is required")
	}
	if resource == "" {
		return nil, fmt.Errorf("resource is required")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if scope == "" {
		return nil, fmt.Errorf("scope is required")
	}

	now := time.Now().UTC()
	return &Permission{
		name:      name,
		resource:  resource,
		action:    action,
		scope:     scope,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructPermission(id, name string, resource vo.Resource, action vo.Action, scope vo.Scope, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == "" {
		return nil, fmt.Errorf("permission ID cannot be empty")
	}

	return &Permission{
		id:        id,
		name:      name,
		resource:  resource,
		action:    action,
		scope:     scope,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Permission) ID() string {
	return p.id
}

func (p *Permission) SetID(id string) error {
	if p.id != "" {
		return fmt.Errorf("permission ID is already set")
	}
	if id == "" {
		return fmt.Errorf("permission ID cannot be empty")
	}
	p.id = id
	return nil
}

func (p *Permission) Name() string {
	return p.name
}

func (p *Permission) Resource() vo.Resource {
	return p.resource
}

func (p *Permission) Action() vo.Action {
	return p.action
}

func (p *Permission) Scope() vo.Scope {
	return p.scope
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

// Code returns the canonical "resource:action" form of the permission.
func (p *Permission) Code() string {
	return fmt.Sprintf("%s:%s", p.resource, p.action)
}
