package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "agritrace/contexts/identity-access/authorization-service/transport/http"
	"agritrace/internal/platform/metrics"
)

func (s *Server) handleAuthzCheck(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.CheckAuthorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.CheckHandler(r.Context(), req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	recordDecisionMetric(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidateCreate(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.ValidateEventActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.ValidateCreateHandler(r.Context(), req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	recordDecisionMetric(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidateEdit(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.ValidateEventActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.ValidateEditHandler(r.Context(), req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	recordDecisionMetric(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEventTypes(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	resp, err := s.authorization.Handler.ListEventTypesHandler(r.Context(), role, false)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCreatableEventTypes(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		writeAuthzError(w, http.StatusBadRequest, "missing_role", "role query parameter is required")
		return
	}
	resp, err := s.authorization.Handler.ListEventTypesHandler(r.Context(), role, true)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func recordDecisionMetric(resp authzhttp.AuthorizationDecisionResponse) {
	outcome := "deny"
	if resp.Allowed {
		outcome = "allow"
	}
	metrics.AuthzDecisions.WithLabelValues(resp.Action, outcome).Inc()
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrEventTypeNotFound):
		writeAuthzError(w, http.StatusNotFound, "event_type_not_found", err.Error())
	case errors.Is(err, authzerrors.ErrUnknownRole),
		errors.Is(err, authzerrors.ErrUnknownAction):
		writeAuthzError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAuthzError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
