package ports

import (
	"context"
	"time"

	contractsv1 "agritrace/contracts/gen/events/v1"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// IdempotencyRecord stores request hash and previous response payload.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

// IdempotencyStore resolves replay/conflict lookups for record creation.
// Writes happen inside the repository's creation critical section so a
// committed record always has its idempotency row.
type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
}

// CreateRecordInput is persisted atomically with its outbox row and, when an
// idempotency key is present, its idempotency row. Validation happens before
// the repository allocates a sequence number.
type CreateRecordInput struct {
	OutboxID             string
	IdempotencyKey       string
	RequestHash          string
	IdempotencyExpiresAt time.Time

	ProductName    string
	Category       string
	Farmer         string
	FarmerAddress  string
	Location       string
	HarvestDate    string
	Certifications []string
	TransactionFee float64
	Status         string
}

// VerifyRecordInput captures one verification increment and its outbox row.
type VerifyRecordInput struct {
	RecordID     string
	VerifierRole string
	OutboxID     string
}

// Repository is the write/read boundary for ledger state. Mutations on the
// same record must be serialized; list/get return isolated copies.
type Repository interface {
	CreateRecord(ctx context.Context, input CreateRecordInput, now time.Time) (entities.TraceabilityRecord, error)
	GetRecord(ctx context.Context, recordID string) (entities.TraceabilityRecord, error)
	ListRecords(ctx context.Context) ([]entities.TraceabilityRecord, error)
	IncrementVerifications(ctx context.Context, input VerifyRecordInput, now time.Time) (entities.TraceabilityRecord, error)
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// RecordEvent reuses the canonical cross-runtime envelope contract.
type RecordEvent = contractsv1.Envelope

// RecordEventPublisher emits ledger events to the message bus adapter.
// Publishing is fire-and-forget relative to ledger state: a publish failure
// never rolls back the mutation that produced the event.
type RecordEventPublisher interface {
	Publish(ctx context.Context, topic string, event RecordEvent) error
}
