package seeds

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"dino/internal/domain/permission"
	"dino/internal/infrastructure/persistence/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

type seedPermission struct {
	Name     string `yaml:"name"`
	Resource string `yaml:"resource"`
	Action   string `yaml:"action"`
	Scope    string `yaml:"scope"`
}

type seedCatalog struct {
	Permissions []seedPermission `yaml:"permissions"`
}

var roleDescriptions = map[permission.Tier]string{
	permission.TierSuperAdmin: "Workspace owner with full authority",
	permission.TierAdmin:      "Venue administrator",
	permission.TierOperator:   "Venue floor staff",
}

// SeedAccessControl seeds the permission catalog and the three system roles.
// It is idempotent; existing rows are left untouched.
func SeedAccessControl(db *gorm.DB) error {
	var catalog seedCatalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return fmt.Errorf("failed to parse permission catalog: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		permIDs := make(map[string]string, len(catalog.Permissions))

		for _, sp := range catalog.Permissions {
			model := models.PermissionModel{
				ID:       uuid.NewString(),
				Name:     sp.Name,
				Resource: sp.Resource,
				Action:   sp.Action,
				Scope:    sp.Scope,
			}
			if err := tx.Where(models.PermissionModel{Name: sp.Name}).
				Attrs(model).FirstOrCreate(&model).Error; err != nil {
				return fmt.Errorf("failed to seed permission %s: %w", sp.Name, err)
			}
			permIDs[model.Name] = model.ID
		}

		for _, tier := range []permission.Tier{permission.TierOperator, permission.TierAdmin, permission.TierSuperAdmin} {
			role := models.RoleModel{
				ID:           uuid.NewString(),
				Name:         tier.String(),
				TierRank:     tier.Rank(),
				Description:  roleDescriptions[tier],
				IsSystemRole: true,
			}
			if err := tx.Where(models.RoleModel{Name: tier.String()}).
				Attrs(role).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", tier, err)
			}

			for _, permName := range tier.DefaultPermissions() {
				pid, ok := permIDs[permName]
				if !ok {
					return fmt.Errorf("role %s references unknown permission %s", tier, permName)
				}
				link := models.RolePermissionModel{RoleID: role.ID, PermissionID: pid}
				if err := tx.Where(link).FirstOrCreate(&link).Error; err != nil {
					return fmt.Errorf("failed to link %s to %s: %w", tier, permName, err)
				}
			}
		}

		return nil
	})
}
