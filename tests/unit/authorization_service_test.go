package unit

import (
	"context"
	"errors"
	"testing"

	authorization "agritrace/contexts/identity-access/authorization-service"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
	httptransport "agritrace/contexts/identity-access/authorization-service/transport/http"
)

func checkDecision(t *testing.T, module authorization.Module, role, action, eventTypeID string) httptransport.AuthorizationDecisionResponse {
	t.Helper()
	decision, err := module.Handler.CheckHandler(context.Background(), httptransport.CheckAuthorizationRequest{
		Role:        role,
		Action:      action,
		EventTypeID: eventTypeID,
	})
	if err != nil {
		t.Fatalf("check %s/%s/%s failed: %v", role, action, eventTypeID, err)
	}
	return decision
}

func TestAuthorizationFarmerCanCreateHarvest(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	decision := checkDecision(t, module, "farmer", "create", "harvest")
	if !decision.Allowed {
		t.Fatalf("expected farmer to create harvest events, got reason %q", decision.Reason)
	}
	if decision.Reason != "authorized" {
		t.Fatalf("expected authorized reason, got %q", decision.Reason)
	}
}

func TestAuthorizationFarmerCannotCreateQualityInspection(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	decision := checkDecision(t, module, "farmer", "create", "quality-inspection")
	if decision.Allowed {
		t.Fatalf("expected denial for farmer creating quality-inspection")
	}
	want := "role farmer is not authorized to create quality-inspection events"
	if decision.Reason != want {
		t.Fatalf("unexpected denial reason: got %q want %q", decision.Reason, want)
	}
}

func TestAuthorizationAdminBypassesEveryCheck(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	catalog, err := module.Handler.ListEventTypesHandler(context.Background(), "", false)
	if err != nil {
		t.Fatalf("list event types failed: %v", err)
	}
	if len(catalog.EventTypes) == 0 {
		t.Fatalf("expected non-empty event type catalog")
	}

	for _, def := range catalog.EventTypes {
		for _, action := range []string{"create", "edit", "view", "delete"} {
			decision := checkDecision(t, module, "admin", action, def.ID)
			if !decision.Allowed {
				t.Fatalf("expected admin %s on %s to pass, got reason %q", action, def.ID, decision.Reason)
			}
		}
	}
}

func TestAuthorizationViewerCanViewButNotMutate(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	view := checkDecision(t, module, "viewer", "view", "harvest")
	if !view.Allowed {
		t.Fatalf("expected viewer to view harvest events, got reason %q", view.Reason)
	}

	for _, action := range []string{"create", "edit", "delete"} {
		decision := checkDecision(t, module, "viewer", action, "harvest")
		if decision.Allowed {
			t.Fatalf("expected viewer %s on harvest to be denied", action)
		}
	}
}

func TestAuthorizationNonAdminCannotDelete(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	for _, role := range []string{"farmer", "inspector", "logistics", "packaging", "retailer", "government"} {
		decision := checkDecision(t, module, role, "delete", "planting")
		if decision.Allowed {
			t.Fatalf("expected %s delete on planting to be denied", role)
		}
	}
}

func TestAuthorizationApprovalGatedEventTypes(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	approve := checkDecision(t, module, "inspector", "approve", "certification")
	if !approve.Allowed {
		t.Fatalf("expected inspector to approve certification, got reason %q", approve.Reason)
	}

	// Approval only exists where the event type demands it.
	noGate := checkDecision(t, module, "inspector", "approve", "quality-inspection")
	if noGate.Allowed {
		t.Fatalf("expected approve on non-gated quality-inspection to be denied")
	}

	wrongRole := checkDecision(t, module, "farmer", "approve", "certification")
	if wrongRole.Allowed {
		t.Fatalf("expected farmer approve on certification to be denied")
	}

	admin := checkDecision(t, module, "admin", "approve", "delivery")
	if !admin.Allowed {
		t.Fatalf("expected admin to approve delivery, got reason %q", admin.Reason)
	}
}

func TestAuthorizationUnknownInputsAreTypedErrors(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	_, err := module.Handler.CheckHandler(context.Background(), httptransport.CheckAuthorizationRequest{
		Role:        "farmer",
		Action:      "create",
		EventTypeID: "teleportation",
	})
	if !errors.Is(err, domainerrors.ErrEventTypeNotFound) {
		t.Fatalf("expected ErrEventTypeNotFound, got %v", err)
	}

	_, err = module.Handler.CheckHandler(context.Background(), httptransport.CheckAuthorizationRequest{
		Role:        "astronaut",
		Action:      "create",
		EventTypeID: "harvest",
	})
	if !errors.Is(err, domainerrors.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}

	_, err = module.Handler.CheckHandler(context.Background(), httptransport.CheckAuthorizationRequest{
		Role:        "farmer",
		Action:      "launch",
		EventTypeID: "harvest",
	})
	if !errors.Is(err, domainerrors.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestAuthorizationValidateCreateMirrorsCheck(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	allowed, err := module.Handler.ValidateCreateHandler(context.Background(), httptransport.ValidateEventActionRequest{
		Role:        "logistics",
		EventTypeID: "transport",
	})
	if err != nil {
		t.Fatalf("validate create failed: %v", err)
	}
	if !allowed.Allowed {
		t.Fatalf("expected logistics to create transport events, got reason %q", allowed.Reason)
	}

	denied, err := module.Handler.ValidateCreateHandler(context.Background(), httptransport.ValidateEventActionRequest{
		Role:        "packaging",
		EventTypeID: "transport",
	})
	if err != nil {
		t.Fatalf("validate create failed: %v", err)
	}
	if denied.Allowed {
		t.Fatalf("expected packaging create on transport to be denied")
	}
}

func TestAuthorizationCreatableEventTypesPerRole(t *testing.T) {
	module := authorization.NewInMemoryModule(nil)

	farmer, err := module.Handler.ListEventTypesHandler(context.Background(), "farmer", true)
	if err != nil {
		t.Fatalf("list creatable failed: %v", err)
	}
	if len(farmer.EventTypes) == 0 {
		t.Fatalf("expected farmer to originate at least one event type")
	}
	for _, def := range farmer.EventTypes {
		if def.RequiredRole != "farmer" {
			t.Fatalf("unexpected creatable event type %s for farmer (required role %s)", def.ID, def.RequiredRole)
		}
	}

	admin, err := module.Handler.ListEventTypesHandler(context.Background(), "admin", true)
	if err != nil {
		t.Fatalf("list creatable for admin failed: %v", err)
	}
	all, err := module.Handler.ListEventTypesHandler(context.Background(), "", false)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(admin.EventTypes) != len(all.EventTypes) {
		t.Fatalf("expected admin to originate every event type: got %d of %d", len(admin.EventTypes), len(all.EventTypes))
	}
}
