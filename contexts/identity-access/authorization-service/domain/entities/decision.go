package entities

import "time"

// AuthorizationDecision is the result of one policy evaluation.
type AuthorizationDecision struct {
	Role        Role
	Action      Action
	EventTypeID string
	Allowed     bool
	Reason      string
	CheckedAt   time.Time
}
