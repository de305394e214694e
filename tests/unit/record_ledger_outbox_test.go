package unit

import (
	"context"
	"sync"
	"testing"

	recordledger "agritrace/contexts/traceability/record-ledger-service"
	"agritrace/contexts/traceability/record-ledger-service/domain/services"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []ports.RecordEvent
	topics []string
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.RecordEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.topics = append(p.topics, topic)
	return nil
}

func TestLedgerOutboxRelayPublishesCreateAndVerifyEvents(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	created := createRecord(t, module, "key-outbox", appleRecordRequest())
	if _, err := module.Handler.VerifyRecordHandler(context.Background(), created.Record.ID, "inspector"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := recordledger.NewOutboxRelay(module.Store, publisher, module.Store, nil)
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.events[0].EventType != services.EventTypeRecordCreated {
		t.Fatalf("expected first event %s, got %s", services.EventTypeRecordCreated, publisher.events[0].EventType)
	}
	if publisher.events[1].EventType != services.EventTypeRecordVerified {
		t.Fatalf("expected second event %s, got %s", services.EventTypeRecordVerified, publisher.events[1].EventType)
	}
	for _, event := range publisher.events {
		if event.PartitionKey != created.Record.ID {
			t.Fatalf("expected partition key %s, got %s", created.Record.ID, event.PartitionKey)
		}
	}

	// Published rows are acknowledged; a second pass finds nothing.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected relay to skip acknowledged rows, got %d events", len(publisher.events))
	}
}
