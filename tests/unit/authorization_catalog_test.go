package unit

import (
	"errors"
	"strings"
	"testing"

	"agritrace/contexts/identity-access/authorization-service/domain/catalog"
	domainerrors "agritrace/contexts/identity-access/authorization-service/domain/errors"
)

func TestCatalogParseRejectsCorruptDocument(t *testing.T) {
	const doc = `
version: 1
event_types:
  - id: harvest
    name: Harvest
    category: harvest
    required_role: farmer
  - id: harvest
    name: Harvest Duplicate
    category: moonbase
    required_role: astronaut
roles:
  - role: farmer
`
	_, err := catalog.Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected construction error for corrupt document")
	}
	if !errors.Is(err, domainerrors.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}

	// Problems are collected and reported together, not first-error-wins.
	for _, fragment := range []string{
		`duplicate event type id "harvest"`,
		`unknown category "moonbase"`,
		`unknown required_role "astronaut"`,
		`missing permissions entry for role "admin"`,
		`missing permissions entry for role "government"`,
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected error to contain %q, got:\n%v", fragment, err)
		}
	}
}

func TestCatalogParseRejectsUnknownPermissionReferences(t *testing.T) {
	const doc = `
version: 2
event_types:
  - id: planting
    name: Planting
    category: planting
    required_role: farmer
    can_edit: [farmer, gardener]
roles:
  - role: farmer
    can_delete_events: [pruning]
  - role: farmer
  - role: inspector
  - role: logistics
  - role: packaging
  - role: viewer
  - role: admin
  - role: retailer
  - role: government
`
	_, err := catalog.Parse([]byte(doc))
	if !errors.Is(err, domainerrors.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	for _, fragment := range []string{
		"unsupported catalog version 2",
		`unknown can_edit role "gardener"`,
		`can_delete_events references unknown event type "pruning"`,
		`duplicate permissions entry for role "farmer"`,
	} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected error to contain %q, got:\n%v", fragment, err)
		}
	}
}

func TestCatalogParseRejectsMalformedYAML(t *testing.T) {
	_, err := catalog.Parse([]byte("version: ["))
	if !errors.Is(err, domainerrors.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for malformed document, got %v", err)
	}
}

func TestCatalogDefaultDocumentLoads(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("embedded catalog must load: %v", err)
	}
	if got := len(c.ListEventTypes()); got != 12 {
		t.Fatalf("expected 12 event types in the embedded catalog, got %d", got)
	}
}
