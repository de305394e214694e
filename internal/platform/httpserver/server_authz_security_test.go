package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	authzhttp "agritrace/contexts/identity-access/authorization-service/transport/http"
)

func TestAuthzCheckReturnsDecision(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"role":"farmer","action":"create","event_type_id":"harvest"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/authz/v1/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp authzhttp.AuthorizationDecisionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if !resp.Allowed {
		t.Fatalf("expected farmer create harvest to be allowed, reason=%q", resp.Reason)
	}
}

func TestAuthzCheckDenialCarriesReason(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"role":"farmer","action":"create","event_type_id":"quality-inspection"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/authz/v1/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp authzhttp.AuthorizationDecisionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Allowed {
		t.Fatalf("expected denial")
	}
	want := "role farmer is not authorized to create quality-inspection events"
	if resp.Reason != want {
		t.Fatalf("unexpected reason: got %q want %q", resp.Reason, want)
	}
}

func TestAuthzCheckUnknownEventTypeIs404(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"role":"farmer","action":"create","event_type_id":"teleportation"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/authz/v1/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthzCheckRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/authz/v1/check", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthzCreatableEventTypesRequiresRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/authz/v1/event-types/creatable", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthzEventTypesListsFullCatalog(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/authz/v1/event-types", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp authzhttp.ListEventTypesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(resp.EventTypes) != 12 {
		t.Fatalf("expected 12 event types, got %d", len(resp.EventTypes))
	}
}
