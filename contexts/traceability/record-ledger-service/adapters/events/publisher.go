package events

import (
	"context"
	"log/slog"

	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// Publisher is a log-only record event publisher used where no message bus
// is wired (in-memory development runs and tests).
type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger}
}

func (p Publisher) Publish(_ context.Context, topic string, event ports.RecordEvent) error {
	p.logger.Info("record event published",
		"event", "ledger_record_event_published",
		"module", "traceability/record-ledger-service",
		"layer", "adapter",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}
