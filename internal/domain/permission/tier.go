package permission

// Tier is the closed set of role tiers. Tiers form a strict linear
// hierarchy: operator < admin < superadmin. All comparisons go through
// Rank(); role names are never compared ad hoc at call sites.
type Tier string

const (
	TierOperator   Tier = "operator"
	TierAdmin      Tier = "admin"
	TierSuperAdmin Tier = "superadmin"
)

var tierRanks = map[Tier]int{
	TierOperator:   1,
	TierAdmin:      2,
	TierSuperAdmin: 3,
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	_, ok := tierRanks[t]
	return ok
}

// Rank returns the tier's position in the hierarchy; higher means more
// authority. Unknown tiers rank 0, below every valid tier.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// Outranks reports whether t is strictly higher than other.
func (t Tier) Outranks(other Tier) bool {
	return t.Rank() > other.Rank()
}

// ParseTier maps a stored role name onto a Tier. Unknown names degrade to
// operator, the least-privileged tier (fail closed).
func ParseTier(s string) Tier {
	t := Tier(s)
	if t.IsValid() {
		return t
	}
	return TierOperator
}

// adminExcludedPermissions are tenant-root actions the admin tier never
// receives through fallback: admin has broad but not workspace-root authority.
var adminExcludedPermissions = map[string]bool{
	"workspace:delete":   true,
	"workspace:settings": true,
	"user:create":        true,
	"user:delete":        true,
	"role:manage":        true,
	"venue:create":       true,
	"venue:delete":       true,
}

// operatorAllowedPermissions is the full whitelist the operator tier may
// satisfy through fallback; everything else is deny-by-default.
var operatorAllowedPermissions = map[string]bool{
	"venue:read":          true,
	"order:read":          true,
	"order:update_status": true,
	"table:read":          true,
	"table:update_status": true,
	"customer:read":       true,
}

// SatisfiesByFallback reports whether the tier inherently grants every
// permission in required, without consulting an explicit grant list.
func (t Tier) SatisfiesByFallback(required []string) bool {
	switch t {
	case TierSuperAdmin:
		return true
	case TierAdmin:
		for _, perm := range required {
			if adminExcludedPermissions[perm] {
				return false
			}
		}
		return true
	case TierOperator:
		for _, perm := range required {
			if !operatorAllowedPermissions[perm] {
				return false
			}
		}
		return true
	}
	return false
}

// DefaultPermissions returns the explicit permission names seeded onto a
// newly created user of this tier.
func (t Tier) DefaultPermissions() []string {
	switch t {
	case TierSuperAdmin:
		return []string{
			"workspace:read", "workspace:update", "workspace:analytics",
			"venue:create", "venue:read", "venue:update", "venue:delete",
			"venue:switch", "venue:analytics", "venue:settings",
			"user:create", "user:read", "user:update", "user:delete",
			"user:change_password", "role:manage",
			"menu:create", "menu:read", "menu:update", "menu:delete",
			"order:read", "order:update", "order:analytics",
			"table:create", "table:read", "table:update", "table:delete",
			"customer:read", "customer:analytics",
		}
	case TierAdmin:
		return []string{
			"venue:read", "venue:update", "venue:analytics", "venue:settings",
			"user:create_operator", "user:read", "user:update_operator",
			"user:change_operator_password",
			"menu:create", "menu:read", "menu:update", "menu:delete",
			"order:read", "order:update", "order:analytics",
			"table:create", "table:read", "table:update", "table:delete",
			"customer:read", "customer:analytics",
		}
	case TierOperator:
		return []string{
			"venue:read",
			"order:read", "order:update_status",
			"table:read", "table:update_status",
			"customer:read",
		}
	}
	return nil
}
