package catalog

import (
	"agritrace/contexts/identity-access/authorization-service/domain/entities"
)

// Catalog is the static registry of event-type definitions and the derived
// role capability matrix. It is loaded once at construction and never
// mutated afterwards, so concurrent readers need no locking.
type Catalog struct {
	eventTypes  []entities.EventTypeDefinition
	byID        map[string]int
	permissions map[entities.Role]entities.RolePermission
}

// ListEventTypes returns every definition in document order.
func (c *Catalog) ListEventTypes() []entities.EventTypeDefinition {
	return append([]entities.EventTypeDefinition(nil), c.eventTypes...)
}

// EventType resolves one definition by id.
func (c *Catalog) EventType(id string) (entities.EventTypeDefinition, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return entities.EventTypeDefinition{}, false
	}
	return c.eventTypes[idx], true
}

// VisibleTo returns the definitions whose view set contains the role.
// Admin sees everything.
func (c *Catalog) VisibleTo(role entities.Role) []entities.EventTypeDefinition {
	if role == entities.RoleAdmin {
		return c.ListEventTypes()
	}
	perm := c.permissions[role]
	items := make([]entities.EventTypeDefinition, 0, len(c.eventTypes))
	for _, def := range c.eventTypes {
		if perm.CanViewEvents[def.ID] {
			items = append(items, def)
		}
	}
	return items
}

// CreatableBy returns the definitions the role may originate.
func (c *Catalog) CreatableBy(role entities.Role) []entities.EventTypeDefinition {
	if role == entities.RoleAdmin {
		return c.ListEventTypes()
	}
	items := make([]entities.EventTypeDefinition, 0, len(c.eventTypes))
	for _, def := range c.eventTypes {
		if def.RequiredRole == role {
			items = append(items, def)
		}
	}
	return items
}

// Permissions returns the derived capability sets for one role.
func (c *Catalog) Permissions(role entities.Role) (entities.RolePermission, bool) {
	perm, ok := c.permissions[role]
	return perm, ok
}

// RoleCanEdit, RoleCanView, and RoleCanDelete are the O(1) membership
// lookups behind every policy check.
func (c *Catalog) RoleCanEdit(role entities.Role, eventTypeID string) bool {
	return c.permissions[role].CanEditEvents[eventTypeID]
}

func (c *Catalog) RoleCanView(role entities.Role, eventTypeID string) bool {
	return c.permissions[role].CanViewEvents[eventTypeID]
}

func (c *Catalog) RoleCanDelete(role entities.Role, eventTypeID string) bool {
	return c.permissions[role].CanDeleteEvents[eventTypeID]
}
