package services

import (
	"encoding/json"
	"time"

	contractsv1 "agritrace/contracts/gen/events/v1"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
)

const (
	EventTypeRecordCreated  = "trace.record.created"
	EventTypeRecordVerified = "trace.record.verified"
)

type recordEventPayload struct {
	RecordID      string `json:"record_id"`
	ProductName   string `json:"product_name"`
	Category      string `json:"category"`
	Farmer        string `json:"farmer"`
	BlockHash     string `json:"block_hash"`
	Verifications int    `json:"verifications"`
	VerifiedBy    string `json:"verified_by,omitempty"`
}

// RecordCreatedEnvelope builds the canonical event for a ledger append.
// Events are partitioned by record id for stable ordering on record-scoped
// consumers.
func RecordCreatedEnvelope(eventID string, record entities.TraceabilityRecord, occurredAt time.Time) (contractsv1.Envelope, error) {
	return newRecordEnvelope(eventID, EventTypeRecordCreated, record, occurredAt)
}

// RecordVerifiedEnvelope builds the canonical event for a verification
// increment.
func RecordVerifiedEnvelope(eventID string, record entities.TraceabilityRecord, occurredAt time.Time) (contractsv1.Envelope, error) {
	return newRecordEnvelope(eventID, EventTypeRecordVerified, record, occurredAt)
}

func newRecordEnvelope(eventID string, eventType string, record entities.TraceabilityRecord, occurredAt time.Time) (contractsv1.Envelope, error) {
	payload, err := json.Marshal(recordEventPayload{
		RecordID:      record.ID,
		ProductName:   record.ProductName,
		Category:      record.Category,
		Farmer:        record.Farmer,
		BlockHash:     record.BlockHash,
		Verifications: record.Verifications,
		VerifiedBy:    record.VerifiedBy,
	})
	if err != nil {
		return contractsv1.Envelope{}, err
	}
	return contractsv1.Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "record-ledger-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "record_id",
		PartitionKey:     record.ID,
		Data:             payload,
	}, nil
}
