package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dino/internal/domain/permission"
	vo "dino/internal/domain/permission/valueobjects"
	"dino/internal/shared/logger"
)

const (
	roleKeyPrefix     = "role:id:"
	roleNameKeyPrefix = "role:name:"
	rolePermsPrefix   = "role:perms:"
	roleTTL           = 30 * time.Minute
)

// cachedRole is the wire form of a role in redis.
type cachedRole struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Tier          string    `json:"tier"`
	Description   string    `json:"description"`
	PermissionIDs []string  `json:"permission_ids"`
	IsSystemRole  bool      `json:"is_system_role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type cachedPermission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	Scope     string    `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedRoleRepository decorates a RoleRepository with a redis read-through
// cache. Roles are small and nearly static, so cache errors degrade to the
// underlying store instead of failing the call.
type CachedRoleRepository struct {
	inner  permission.RoleRepository
	client *redis.Client
	logger logger.Interface
}

// NewCachedRoleRepository wraps a role repository with redis caching
func NewCachedRoleRepository(inner permission.RoleRepository, client *redis.Client, logger logger.Interface) permission.RoleRepository {
	return &CachedRoleRepository{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

// Create passes through and does not populate the cache
func (c *CachedRoleRepository) Create(ctx context.Context, role *permission.Role) error {
	return c.inner.Create(ctx, role)
}

// GetByID serves a role from cache when present
func (c *CachedRoleRepository) GetByID(ctx context.Context, id string) (*permission.Role, error) {
	if role := c.lookup(ctx, roleKeyPrefix+id); role != nil {
		return role, nil
	}

	role, err := c.inner.GetByID(ctx, id)
	if err != nil || role == nil {
		return role, err
	}
	c.store(ctx, role)
	return role, nil
}

// GetByName serves a role from cache when present
func (c *CachedRoleRepository) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	if role := c.lookup(ctx, roleNameKeyPrefix+name); role != nil {
		return role, nil
	}

	role, err := c.inner.GetByName(ctx, name)
	if err != nil || role == nil {
		return role, err
	}
	c.store(ctx, role)
	return role, nil
}

// List always hits the underlying store
func (c *CachedRoleRepository) List(ctx context.Context) ([]*permission.Role, error) {
	return c.inner.List(ctx)
}

// Update writes through and invalidates cached copies
func (c *CachedRoleRepository) Update(ctx context.Context, role *permission.Role) error {
	if err := c.inner.Update(ctx, role); err != nil {
		return err
	}
	c.invalidate(ctx, role.ID(), role.Name())
	return nil
}

// GetPermissions serves the resolved permission entities of a role from cache
func (c *CachedRoleRepository) GetPermissions(ctx context.Context, roleID string) ([]*permission.Permission, error) {
	if perms := c.lookupPermissions(ctx, roleID); perms != nil {
		return perms, nil
	}

	perms, err := c.inner.GetPermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}
	c.storePermissions(ctx, roleID, perms)
	return perms, nil
}

// AssignPermissions writes through and invalidates the permission set
func (c *CachedRoleRepository) AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if err := c.inner.AssignPermissions(ctx, roleID, permissionIDs); err != nil {
		return err
	}
	if err := c.client.Del(ctx, rolePermsPrefix+roleID).Err(); err != nil {
		c.logger.Warnw("failed to invalidate role permission cache", "role_id", roleID, "error", err)
	}
	return nil
}

func (c *CachedRoleRepository) lookup(ctx context.Context, key string) *permission.Role {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("role cache read failed", "key", key, "error", err)
		}
		return nil
	}

	var cached cachedRole
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warnw("role cache entry corrupt", "key", key, "error", err)
		return nil
	}

	role, err := permission.ReconstructRole(
		cached.ID,
		cached.Name,
		permission.ParseTier(cached.Tier),
		cached.Description,
		cached.PermissionIDs,
		cached.IsSystemRole,
		cached.CreatedAt,
		cached.UpdatedAt,
	)
	if err != nil {
		c.logger.Warnw("role cache entry invalid", "key", key, "error", err)
		return nil
	}
	return role
}

func (c *CachedRoleRepository) store(ctx context.Context, role *permission.Role) {
	data, err := json.Marshal(cachedRole{
		ID:            role.ID(),
		Name:          role.Name(),
		Tier:          role.Tier().String(),
		Description:   role.Description(),
		PermissionIDs: role.PermissionIDs(),
		IsSystemRole:  role.IsSystemRole(),
		CreatedAt:     role.CreatedAt(),
		UpdatedAt:     role.UpdatedAt(),
	})
	if err != nil {
		return
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, roleKeyPrefix+role.ID(), data, roleTTL)
	pipe.Set(ctx, roleNameKeyPrefix+role.Name(), data, roleTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("role cache write failed", "role_id", role.ID(), "error", err)
	}
}

func (c *CachedRoleRepository) lookupPermissions(ctx context.Context, roleID string) []*permission.Permission {
	data, err := c.client.Get(ctx, rolePermsPrefix+roleID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("role permission cache read failed", "role_id", roleID, "error", err)
		}
		return nil
	}

	var cached []cachedPermission
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warnw("role permission cache entry corrupt", "role_id", roleID, "error", err)
		return nil
	}

	perms, err := permissionsFromCache(cached)
	if err != nil {
		c.logger.Warnw("role permission cache entry invalid", "role_id", roleID, "error", err)
		return nil
	}
	return perms
}

func (c *CachedRoleRepository) storePermissions(ctx context.Context, roleID string, perms []*permission.Permission) {
	cached := make([]cachedPermission, 0, len(perms))
	for _, p := range perms {
		cached = append(cached, cachedPermission{
			ID:        p.ID(),
			Name:      p.Name(),
			Resource:  p.Resource().String(),
			Action:    p.Action().String(),
			Scope:     p.Scope().String(),
			CreatedAt: p.CreatedAt(),
			UpdatedAt: p.UpdatedAt(),
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, rolePermsPrefix+roleID, data, roleTTL).Err(); err != nil {
		c.logger.Warnw("role permission cache write failed", "role_id", roleID, "error", err)
	}
}

func (c *CachedRoleRepository) invalidate(ctx context.Context, roleID, name string) {
	keys := []string{roleKeyPrefix + roleID, roleNameKeyPrefix + name, rolePermsPrefix + roleID}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("role cache invalidation failed", "role_id", roleID, "error", err)
	}
}

func permissionsFromCache(cached []cachedPermission) ([]*permission.Permission, error) {
	perms := make([]*permission.Permission, 0, len(cached))
	for _, cp := range cached {
		resource, err := vo.NewResource(cp.Resource)
		if err != nil {
			return nil, fmt.Errorf("permission %s: %w", cp.ID, err)
		}
		action, err := vo.NewAction(cp.Action)
		if err != nil {
			return nil, fmt.Errorf("permission %s: %w", cp.ID, err)
		}
		scope, err := vo.NewScope(cp.Scope)
		if err != nil {
			return nil, fmt.Errorf("permission %s: %w", cp.ID, err)
		}
		p, err := permission.ReconstructPermission(cp.ID, cp.Name, resource, action, scope, cp.CreatedAt, cp.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("permission %s: %w", cp.ID, err)
		}
		perms = append(perms, p)
	}
	return perms, nil
}
