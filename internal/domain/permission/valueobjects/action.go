package valueobjects

import "fmt"

// Action identifies the verb a permission grants on its resource.
type Action string

const (
	ActionCreate       Action = "create"
	ActionRead         Action = "read"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionManage       Action = "manage"
	ActionUpdateStatus Action = "update_status"
	ActionSettings     Action = "settings"
	ActionAnalytics    Action = "analytics"
	ActionSwitch       Action = "switch"

	// Password and delegated-user verbs. The *_operator actions let the
	// admin tier manage operators without holding the blanket user verbs.
	ActionChangePassword         Action = "change_password"
	ActionCreateOperator         Action = "create_operator"
	ActionUpdateOperator         Action = "update_operator"
	ActionChangeOperatorPassword Action = "change_operator_password"
)

var validActions = map[Action]bool{
	ActionCreate:                 true,
	ActionRead:                   true,
	ActionUpdate:                 true,
	ActionDelete:                 true,
	ActionManage:                 true,
	ActionUpdateStatus:           true,
	ActionSettings:               true,
	ActionAnalytics:              true,
	ActionSwitch:                 true,
	ActionChangePassword:         true,
	ActionCreateOperator:         true,
	ActionUpdateOperator:         true,
	ActionChangeOperatorPassword: true,
}

func NewAction(s string) (Action, error) {
	a := Action(s)
	if !validActions[a] {
		return "", fmt.Errorf("unknown permission action: %q", s)
	}
	return a, nil
}

func (a Action) String() string {
	return string(a)
}
