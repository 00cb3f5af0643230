package permission

import "context"

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id string) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error

	GetPermissions(ctx context.Context, roleID string) ([]*Permission, error)
	AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByID(ctx context.Context, id string) (*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Permission, error)
}
