package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	authzqueries "agritrace/contexts/identity-access/authorization-service/application/queries"
	ledgererrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	ledgerhttp "agritrace/contexts/traceability/record-ledger-service/transport/http"
	"agritrace/internal/platform/metrics"
)

// Appending a traceability record is the ledger-facing form of the harvest
// event, so creation entitlement is checked against that catalog entry.
const recordCreationEventType = "harvest"

// verifierRoles is caller-level policy: which roles may vouch for a record.
var verifierRoles = map[string]struct{}{
	"admin":     {},
	"inspector": {},
	"retailer":  {},
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.ListRecordsHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("record_id")
	resp, err := s.ledger.Handler.GetRecordHandler(r.Context(), recordID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	role := r.Header.Get("X-User-Role")
	if role == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_role", "X-User-Role header is required")
		return
	}

	decision, err := s.authorization.Handler.Check.Execute(r.Context(), authzqueries.CheckAuthorizationQuery{
		Role:        role,
		Action:      "create",
		EventTypeID: recordCreationEventType,
	})
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	if !decision.Allowed {
		metrics.AuthzDecisions.WithLabelValues("create", "deny").Inc()
		writeLedgerError(w, http.StatusForbidden, "forbidden", decision.Reason)
		return
	}
	metrics.AuthzDecisions.WithLabelValues("create", "allow").Inc()

	var req ledgerhttp.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.CreateRecordHandler(
		r.Context(),
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	if resp.Replayed {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	metrics.RecordsCreated.Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVerifyRecord(w http.ResponseWriter, r *http.Request) {
	role := r.Header.Get("X-User-Role")
	if role == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_role", "X-User-Role header is required")
		return
	}
	if _, ok := verifierRoles[role]; !ok {
		metrics.AuthzDecisions.WithLabelValues("verify", "deny").Inc()
		writeLedgerError(w, http.StatusForbidden, "forbidden",
			fmt.Sprintf("role %s is not permitted to verify ledger records", role))
		return
	}
	metrics.AuthzDecisions.WithLabelValues("verify", "allow").Inc()

	resp, err := s.ledger.Handler.VerifyRecordHandler(r.Context(), r.PathValue("record_id"), role)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	metrics.RecordVerifications.Inc()
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrRecordNotFound):
		writeLedgerError(w, http.StatusNotFound, "record_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrUnknownCategory):
		writeLedgerError(w, http.StatusUnprocessableEntity, "unknown_category", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidRecordInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_record_input", err.Error())
	case errors.Is(err, ledgererrors.ErrIdempotencyKeyRequired):
		writeLedgerError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, ledgererrors.ErrIdempotencyConflict):
		writeLedgerError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
