package httptransport

import "time"

// CheckAuthorizationRequest is the request body for one policy evaluation.
type CheckAuthorizationRequest struct {
	Role        string `json:"role"`
	Action      string `json:"action"`
	EventTypeID string `json:"event_type_id"`
}

// ValidateEventActionRequest is the request body for the create/edit
// validation endpoints; the action is implied by the route.
type ValidateEventActionRequest struct {
	Role        string `json:"role"`
	EventTypeID string `json:"event_type_id"`
}

// AuthorizationDecisionResponse describes one policy decision.
type AuthorizationDecisionResponse struct {
	Role        string    `json:"role"`
	Action      string    `json:"action"`
	EventTypeID string    `json:"event_type_id"`
	Allowed     bool      `json:"allowed"`
	Reason      string    `json:"reason"`
	CheckedAt   time.Time `json:"checked_at"`
}

type EventTypeDTO struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	RequiredRole       string   `json:"required_role"`
	CanEdit            []string `json:"can_edit"`
	CanView            []string `json:"can_view"`
	RequiresApproval   bool     `json:"requires_approval"`
	AttachmentsAllowed bool     `json:"attachments_allowed"`
}

type ListEventTypesResponse struct {
	EventTypes []EventTypeDTO `json:"event_types"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
