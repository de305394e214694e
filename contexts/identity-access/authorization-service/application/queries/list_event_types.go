package queries

import (
	"context"
	"log/slog"
	"strings"

	application "agritrace/contexts/identity-access/authorization-service/application"
	"agritrace/contexts/identity-access/authorization-service/domain/catalog"
	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
)

// ListEventTypesQuery selects which projection of the catalog to return.
// An empty role means the full catalog; CreatableOnly narrows a role scope
// to the event types the role may originate.
type ListEventTypesQuery struct {
	Role          string
	CreatableOnly bool
}

type ListEventTypesUseCase struct {
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

func (u ListEventTypesUseCase) Execute(ctx context.Context, query ListEventTypesQuery) ([]entities.EventTypeDefinition, error) {
	logger := application.ResolveLogger(u.Logger)

	raw := strings.TrimSpace(query.Role)
	if raw == "" {
		if query.CreatableOnly {
			return nil, domainerrors.ErrUnknownRole
		}
		return u.Catalog.ListEventTypes(), nil
	}

	role := entities.Role(raw)
	if !role.Valid() {
		logger.Warn("event type listing rejected",
			"event", "authz_list_event_types_rejected",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role", raw,
		)
		return nil, domainerrors.ErrUnknownRole
	}

	if query.CreatableOnly {
		return u.Catalog.CreatableBy(role), nil
	}
	return u.Catalog.VisibleTo(role), nil
}
