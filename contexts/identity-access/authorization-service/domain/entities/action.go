package entities

// Action is an operation a role may perform against an event type.
type Action string

const (
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionView    Action = "view"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionEdit, ActionView, ActionDelete, ActionApprove:
		return true
	default:
		return false
	}
}
