package valueobjects

import "fmt"

// Resource identifies the kind of entity a permission applies to.
type Resource string

const (
	ResourceWorkspace Resource = "workspace"
	ResourceVenue     Resource = "venue"
	ResourceMenu      Resource = "menu"
	ResourceOrder     Resource = "order"
	ResourceTable     Resource = "table"
	ResourceUser      Resource = "user"
	ResourceCustomer  Resource = "customer"
	ResourceRole      Resource = "role"
	ResourceAnalytics Resource = "analytics"
)

var validResources = map[Resource]bool{
	ResourceWorkspace: true,
	ResourceVenue:     true,
	ResourceMenu:      true,
	ResourceOrder:     true,
	ResourceTable:     true,
	ResourceUser:      true,
	ResourceCustomer:  true,
	ResourceRole:      true,
	ResourceAnalytics: true,
}

func NewResource(s string) (Resource, error) {
	r := Resource(s)
	if !validResources[r] {
		return "", fmt.Errorf("unknown permission resource: %q", s)
	}
	return r, nil
}

func (r Resource) String() string {
	return string(r)
}
