package valueobjects

import "fmt"

// Scope is the breadth of a permission grant.
type Scope string

const (
	ScopeOwn       Scope = "own"
	ScopeVenue     Scope = "venue"
	ScopeWorkspace Scope = "workspace"
	ScopeAll       Scope = "all"
)

var validScopes = map[Scope]bool{
	ScopeOwn:       true,
	ScopeVenue:     true,
	ScopeWorkspace: true,
	ScopeAll:       true,
}

func NewScope(s string) (Scope, error) {
	sc := Scope(s)
	if !validScopes[sc] {
		return "", fmt.Errorf("unknown permission scope: %q", s)
	}
	return sc, nil
}

func (s Scope) String() string {
	return string(s)
}
