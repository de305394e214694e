package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Default loads and validates the embedded catalog document.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// MustDefault is Default for composition roots where a corrupted embedded
// catalog is a programmer error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document, validates it, and derives the role
// capability matrix. All configuration problems are reported together as a
// single construction error wrapping ErrInvalidCatalog.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidCatalog, err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return build(doc), nil
}

func build(doc document) *Catalog {
	c := &Catalog{
		byID:        make(map[string]int, len(doc.EventTypes)),
		permissions: make(map[entities.Role]entities.RolePermission, len(doc.Roles)),
	}

	for idx, item := range doc.EventTypes {
		def := entities.EventTypeDefinition{
			ID:                 item.ID,
			Name:               item.Name,
			Category:           entities.Category(item.Category),
			RequiredRole:       entities.Role(item.RequiredRole),
			CanEdit:            toRoles(item.CanEdit),
			CanView:            toRoles(item.CanView),
			RequiresApproval:   item.RequiresApproval,
			AttachmentsAllowed: item.AttachmentsAllowed,
		}
		c.eventTypes = append(c.eventTypes, def)
		c.byID[def.ID] = idx
	}

	for _, item := range doc.Roles {
		role := entities.Role(item.Role)
		perm := entities.RolePermission{
			Role:             role,
			CanCreateEvents:  make(map[string]bool),
			CanEditEvents:    make(map[string]bool),
			CanViewEvents:    make(map[string]bool),
			CanDeleteEvents:  make(map[string]bool),
			CanApproveEvents: make(map[string]bool),
			CanManageUsers:   item.CanManageUsers,
			CanViewReports:   item.CanViewReports,
			CanExportData:    item.CanExportData,
			CanManageSystem:  item.CanManageSystem,
		}
		for _, id := range item.CanDeleteEvents {
			perm.CanDeleteEvents[id] = true
		}
		c.permissions[role] = perm
	}

	// Derive the event sets from the definitions so the matrix cannot drift
	// from the catalog. Admin holds the superset of every event-type id.
	for _, def := range c.eventTypes {
		c.permissions[def.RequiredRole].CanCreateEvents[def.ID] = true
		for _, role := range def.CanEdit {
			c.permissions[role].CanEditEvents[def.ID] = true
			if def.RequiresApproval {
				c.permissions[role].CanApproveEvents[def.ID] = true
			}
		}
		for _, role := range def.CanView {
			c.permissions[role].CanViewEvents[def.ID] = true
		}

		admin := c.permissions[entities.RoleAdmin]
		admin.CanCreateEvents[def.ID] = true
		admin.CanEditEvents[def.ID] = true
		admin.CanViewEvents[def.ID] = true
		admin.CanDeleteEvents[def.ID] = true
		admin.CanApproveEvents[def.ID] = true
	}

	return c
}

func toRoles(values []string) []entities.Role {
	roles := make([]entities.Role, 0, len(values))
	for _, value := range values {
		roles = append(roles, entities.Role(value))
	}
	return roles
}
