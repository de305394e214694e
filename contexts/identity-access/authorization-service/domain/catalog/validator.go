package catalog

import (
	"fmt"
	"strings"

	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
)

// validate checks the document for:
//   - duplicate or empty event-type ids
//   - unknown roles and categories
//   - a permissions entry for every role in the closed set
//
// All problems are collected and reported together.
func validate(doc document) error {
	var errs []string

	if doc.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported catalog version %d", doc.Version))
	}
	if len(doc.EventTypes) == 0 {
		errs = append(errs, "event_types must not be empty")
	}

	seen := make(map[string]bool, len(doc.EventTypes))
	for i, item := range doc.EventTypes {
		loc := fmt.Sprintf("event_types[%d]", i)
		if item.ID == "" {
			errs = append(errs, fmt.Sprintf("%s: id is required", loc))
			continue
		}
		loc = fmt.Sprintf("event type %s", item.ID)
		if seen[item.ID] {
			errs = append(errs, fmt.Sprintf("duplicate event type id %q", item.ID))
		}
		seen[item.ID] = true

		if item.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", loc))
		}
		if !entities.Category(item.Category).Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", loc, item.Category))
		}
		if !entities.Role(item.RequiredRole).Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown required_role %q", loc, item.RequiredRole))
		}
		for _, role := range item.CanEdit {
			if !entities.Role(role).Valid() {
				errs = append(errs, fmt.Sprintf("%s: unknown can_edit role %q", loc, role))
			}
		}
		for _, role := range item.CanView {
			if !entities.Role(role).Valid() {
				errs = append(errs, fmt.Sprintf("%s: unknown can_view role %q", loc, role))
			}
		}
	}

	declared := make(map[entities.Role]bool, len(doc.Roles))
	for i, item := range doc.Roles {
		role := entities.Role(item.Role)
		if !role.Valid() {
			errs = append(errs, fmt.Sprintf("roles[%d]: unknown role %q", i, item.Role))
			continue
		}
		if declared[role] {
			errs = append(errs, fmt.Sprintf("duplicate permissions entry for role %q", item.Role))
		}
		declared[role] = true
		for _, id := range item.CanDeleteEvents {
			if !seen[id] {
				errs = append(errs, fmt.Sprintf("role %s: can_delete_events references unknown event type %q", item.Role, id))
			}
		}
	}
	for _, role := range entities.Roles() {
		if !declared[role] {
			errs = append(errs, fmt.Sprintf("missing permissions entry for role %q", role))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", domainerrors.ErrInvalidCatalog, strings.Join(errs, "\n  - "))
	}
	return nil
}
