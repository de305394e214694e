package services

import (
	"fmt"

	"agritrace/contexts/identity-access/authorization-service/domain/catalog"
	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
)

// Policy evaluation against the catalog. Admin is an unconditional bypass on
// every check; unknown event types surface as ErrEventTypeNotFound.

func CanCreate(c *catalog.Catalog, role entities.Role, eventTypeID string) (bool, error) {
	def, ok := c.EventType(eventTypeID)
	if !ok {
		return false, domainerrors.ErrEventTypeNotFound
	}
	if role == entities.RoleAdmin {
		return true, nil
	}
	return def.RequiredRole == role, nil
}

func CanEdit(c *catalog.Catalog, role entities.Role, eventTypeID string) (bool, error) {
	if _, ok := c.EventType(eventTypeID); !ok {
		return false, domainerrors.ErrEventTypeNotFound
	}
	if role == entities.RoleAdmin {
		return true, nil
	}
	return c.RoleCanEdit(role, eventTypeID), nil
}

func CanView(c *catalog.Catalog, role entities.Role, eventTypeID string) (bool, error) {
	if _, ok := c.EventType(eventTypeID); !ok {
		return false, domainerrors.ErrEventTypeNotFound
	}
	if role == entities.RoleAdmin {
		return true, nil
	}
	return c.RoleCanView(role, eventTypeID), nil
}

func CanDelete(c *catalog.Catalog, role entities.Role, eventTypeID string) (bool, error) {
	if _, ok := c.EventType(eventTypeID); !ok {
		return false, domainerrors.ErrEventTypeNotFound
	}
	if role == entities.RoleAdmin {
		return true, nil
	}
	return c.RoleCanDelete(role, eventTypeID), nil
}

// CanApprove requires the event type to be approval-gated; the approver set
// is the edit set plus admin.
func CanApprove(c *catalog.Catalog, role entities.Role, eventTypeID string) (bool, error) {
	def, ok := c.EventType(eventTypeID)
	if !ok {
		return false, domainerrors.ErrEventTypeNotFound
	}
	if !def.RequiresApproval {
		return false, nil
	}
	if role == entities.RoleAdmin {
		return true, nil
	}
	return c.RoleCanEdit(role, eventTypeID), nil
}

// Evaluate dispatches one action check.
func Evaluate(c *catalog.Catalog, role entities.Role, action entities.Action, eventTypeID string) (bool, error) {
	switch action {
	case entities.ActionCreate:
		return CanCreate(c, role, eventTypeID)
	case entities.ActionEdit:
		return CanEdit(c, role, eventTypeID)
	case entities.ActionView:
		return CanView(c, role, eventTypeID)
	case entities.ActionDelete:
		return CanDelete(c, role, eventTypeID)
	case entities.ActionApprove:
		return CanApprove(c, role, eventTypeID)
	default:
		return false, domainerrors.ErrUnknownAction
	}
}

// DenyReason renders the caller-facing denial message.
func DenyReason(role entities.Role, action entities.Action, eventTypeID string) string {
	return fmt.Sprintf("role %s is not authorized to %s %s events", role, action, eventTypeID)
}
