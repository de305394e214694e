package queries

import (
	"context"
	"log/slog"
	"time"

	application "agritrace/contexts/identity-access/authorization-service/application"
	"agritrace/contexts/identity-access/authorization-service/domain/catalog"
	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
	"agritrace/contexts/identity-access/authorization-service/domain/services"
	"agritrace/contexts/identity-access/authorization-service/ports"
)

// CheckAuthorizationQuery is the request model for one policy evaluation.
type CheckAuthorizationQuery struct {
	Role        string
	Action      string
	EventTypeID string
}

// CheckAuthorizationUseCase evaluates role/action/event-type triples against
// the static catalog. Deterministic given catalog + inputs; no hidden state.
type CheckAuthorizationUseCase struct {
	Catalog *catalog.Catalog
	Clock   ports.Clock
	Logger  *slog.Logger
}

// Execute returns a decision value so transports can branch on denial
// without centralized error handling. Unknown roles, actions, and event
// types are typed errors, never silent false.
func (u CheckAuthorizationUseCase) Execute(ctx context.Context, query CheckAuthorizationQuery) (entities.AuthorizationDecision, error) {
	logger := application.ResolveLogger(u.Logger)

	role := entities.Role(query.Role)
	if !role.Valid() {
		return entities.AuthorizationDecision{}, domainerrors.ErrUnknownRole
	}
	action := entities.Action(query.Action)
	if !action.Valid() {
		return entities.AuthorizationDecision{}, domainerrors.ErrUnknownAction
	}

	allowed, err := services.Evaluate(u.Catalog, role, action, query.EventTypeID)
	if err != nil {
		logger.Warn("authorization check failed",
			"event", "authz_check_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role", query.Role,
			"action", query.Action,
			"event_type_id", query.EventTypeID,
			"error", err.Error(),
		)
		return entities.AuthorizationDecision{}, err
	}

	reason := "authorized"
	if !allowed {
		reason = services.DenyReason(role, action, query.EventTypeID)
		logger.Warn("authorization denied",
			"event", "authz_check_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role", query.Role,
			"action", query.Action,
			"event_type_id", query.EventTypeID,
		)
	} else {
		logger.Debug("authorization allowed",
			"event", "authz_check_allowed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role", query.Role,
			"action", query.Action,
			"event_type_id", query.EventTypeID,
		)
	}

	return entities.AuthorizationDecision{
		Role:        role,
		Action:      action,
		EventTypeID: query.EventTypeID,
		Allowed:     allowed,
		Reason:      reason,
		CheckedAt:   u.now(),
	}, nil
}

func (u CheckAuthorizationUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
