package httpadapter

import (
	"context"
	"log/slog"

	application "agritrace/contexts/identity-access/authorization-service/application"
	"agritrace/contexts/identity-access/authorization-service/application/queries"
	"agritrace/contexts/identity-access/authorization-service/domain/entities"
	httptransport "agritrace/contexts/identity-access/authorization-service/transport/http"
)

// Handler maps HTTP DTOs to application queries.
type Handler struct {
	Check          queries.CheckAuthorizationUseCase
	ListEventTypes queries.ListEventTypesUseCase
	Logger         *slog.Logger
}

// CheckHandler evaluates one role/action/event-type triple.
func (h Handler) CheckHandler(
	ctx context.Context,
	request httptransport.CheckAuthorizationRequest,
) (httptransport.AuthorizationDecisionResponse, error) {
	decision, err := h.Check.Execute(ctx, queries.CheckAuthorizationQuery{
		Role:        request.Role,
		Action:      request.Action,
		EventTypeID: request.EventTypeID,
	})
	if err != nil {
		return httptransport.AuthorizationDecisionResponse{}, err
	}
	return toDecisionResponse(decision), nil
}

// ValidateCreateHandler evaluates event-creation entitlement for a role.
func (h Handler) ValidateCreateHandler(
	ctx context.Context,
	request httptransport.ValidateEventActionRequest,
) (httptransport.AuthorizationDecisionResponse, error) {
	return h.validateAction(ctx, request, entities.ActionCreate)
}

// ValidateEditHandler evaluates event-edit entitlement for a role.
func (h Handler) ValidateEditHandler(
	ctx context.Context,
	request httptransport.ValidateEventActionRequest,
) (httptransport.AuthorizationDecisionResponse, error) {
	return h.validateAction(ctx, request, entities.ActionEdit)
}

func (h Handler) validateAction(
	ctx context.Context,
	request httptransport.ValidateEventActionRequest,
	action entities.Action,
) (httptransport.AuthorizationDecisionResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http authz validation received",
		"event", "authz_http_validate_received",
		"module", "identity-access/authorization-service",
		"layer", "transport",
		"role", request.Role,
		"action", string(action),
		"event_type_id", request.EventTypeID,
	)

	decision, err := h.Check.Execute(ctx, queries.CheckAuthorizationQuery{
		Role:        request.Role,
		Action:      string(action),
		EventTypeID: request.EventTypeID,
	})
	if err != nil {
		logger.Error("http authz validation failed",
			"event", "authz_http_validate_failed",
			"module", "identity-access/authorization-service",
			"layer", "transport",
			"role", request.Role,
			"action", string(action),
			"event_type_id", request.EventTypeID,
			"error", err.Error(),
		)
		return httptransport.AuthorizationDecisionResponse{}, err
	}
	return toDecisionResponse(decision), nil
}

// ListEventTypesHandler returns the catalog, optionally narrowed to what one
// role can view or originate.
func (h Handler) ListEventTypesHandler(
	ctx context.Context,
	role string,
	creatableOnly bool,
) (httptransport.ListEventTypesResponse, error) {
	definitions, err := h.ListEventTypes.Execute(ctx, queries.ListEventTypesQuery{
		Role:          role,
		CreatableOnly: creatableOnly,
	})
	if err != nil {
		return httptransport.ListEventTypesResponse{}, err
	}

	items := make([]httptransport.EventTypeDTO, 0, len(definitions))
	for _, def := range definitions {
		items = append(items, httptransport.EventTypeDTO{
			ID:                 def.ID,
			Name:               def.Name,
			Category:           string(def.Category),
			RequiredRole:       string(def.RequiredRole),
			CanEdit:            rolesToStrings(def.CanEdit),
			CanView:            rolesToStrings(def.CanView),
			RequiresApproval:   def.RequiresApproval,
			AttachmentsAllowed: def.AttachmentsAllowed,
		})
	}
	return httptransport.ListEventTypesResponse{EventTypes: items}, nil
}

func toDecisionResponse(decision entities.AuthorizationDecision) httptransport.AuthorizationDecisionResponse {
	return httptransport.AuthorizationDecisionResponse{
		Role:        string(decision.Role),
		Action:      string(decision.Action),
		EventTypeID: decision.EventTypeID,
		Allowed:     decision.Allowed,
		Reason:      decision.Reason,
		CheckedAt:   decision.CheckedAt,
	}
}

func rolesToStrings(roles []entities.Role) []string {
	values := make([]string, 0, len(roles))
	for _, role := range roles {
		values = append(values, string(role))
	}
	return values
}
