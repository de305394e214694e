package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	"agritrace/contexts/traceability/record-ledger-service/domain/services"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

type outboxRow struct {
	message     ports.OutboxMessage
	published   bool
	publishedAt time.Time
}

// Store is the in-memory ledger adapter. One mutex serializes sequence
// allocation, verification increments, and outbox appends; readers copy
// under the read lock so snapshots are isolated from writers.
type Store struct {
	mu          sync.RWMutex
	records     map[string]entities.TraceabilityRecord
	order       []string
	outbox      []outboxRow
	idempotency map[string]ports.IdempotencyRecord
	sequence    uint64
}

func NewStore() *Store {
	return &Store{
		records:     make(map[string]entities.TraceabilityRecord),
		idempotency: make(map[string]ports.IdempotencyRecord),
	}
}

func (s *Store) CreateRecord(ctx context.Context, input ports.CreateRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(input, now)
}

// appendLocked allocates the next sequence number and builds the record.
// Callers hold the write lock.
func (s *Store) appendLocked(input ports.CreateRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	s.sequence++
	recordID := fmt.Sprintf("BLK%03d", s.sequence)
	if _, exists := s.records[recordID]; exists {
		return entities.TraceabilityRecord{}, domainerrors.ErrLedgerCorrupted
	}

	record := entities.TraceabilityRecord{
		ID:             recordID,
		ProductName:    input.ProductName,
		Category:       input.Category,
		Farmer:         input.Farmer,
		FarmerAddress:  input.FarmerAddress,
		Location:       input.Location,
		HarvestDate:    input.HarvestDate,
		Certifications: append([]string(nil), input.Certifications...),
		Timestamp:      now,
		Status:         input.Status,
		Verified:       true,
		TransactionFee: input.TransactionFee,
		Verifications:  1,
	}
	record.BlockHash = services.BlockHash(record)
	record.TxHash = services.TxHash(record)

	// Same critical section as the append: a visible record always has its
	// idempotency row, and a replay can never race the creation.
	if input.IdempotencyKey != "" {
		payload, err := json.Marshal(record)
		if err != nil {
			return entities.TraceabilityRecord{}, err
		}
		s.idempotency[input.IdempotencyKey] = ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: input.RequestHash,
			Payload:     payload,
			ExpiresAt:   input.IdempotencyExpiresAt,
		}
	}

	s.records[recordID] = record
	s.order = append(s.order, recordID)
	s.appendOutboxLocked(input.OutboxID, record, now, services.RecordCreatedEnvelope)
	return cloneRecord(record), nil
}

func (s *Store) GetRecord(ctx context.Context, recordID string) (entities.TraceabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordID]
	if !ok {
		return entities.TraceabilityRecord{}, domainerrors.ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

func (s *Store) ListRecords(ctx context.Context) ([]entities.TraceabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.TraceabilityRecord, 0, len(s.order))
	for _, recordID := range s.order {
		items = append(items, cloneRecord(s.records[recordID]))
	}
	return items, nil
}

func (s *Store) IncrementVerifications(ctx context.Context, input ports.VerifyRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[input.RecordID]
	if !ok {
		return entities.TraceabilityRecord{}, domainerrors.ErrRecordNotFound
	}

	verifiedAt := now
	record.Verifications++
	record.Verified = true
	record.LastVerified = &verifiedAt
	record.VerifiedBy = input.VerifierRole

	s.records[input.RecordID] = record
	s.appendOutboxLocked(input.OutboxID, record, now, services.RecordVerifiedEnvelope)
	return cloneRecord(record), nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].published = true
			s.outbox[i].publishedAt = publishedAt
			return nil
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.idempotency[key]
	if !ok || record.ExpiresAt.Before(now) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// SeedDemoData loads a handful of realistic records for development
// dashboards. The last entry is a legacy import that never went through the
// create path, so it surfaces as a pending product view.
func (s *Store) SeedDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	seeds := []ports.CreateRecordInput{
		{
			ProductName:    "Organic Fuji Apples",
			Category:       "Fruit",
			Farmer:         "Green Valley Farm",
			FarmerAddress:  "0x4f2a91bc77d1",
			Location:       "Yakima, WA",
			HarvestDate:    "2025-09-14",
			Certifications: []string{"USDA Organic", "GlobalG.A.P."},
			TransactionFee: 0.0021,
			Status:         entities.StatusCertified,
		},
		{
			ProductName:    "Heirloom Tomatoes",
			Category:       "Vegetable",
			Farmer:         "Sunrise Acres",
			FarmerAddress:  "0x88d03efb1a09",
			Location:       "Fresno, CA",
			HarvestDate:    "2025-10-02",
			Certifications: []string{"USDA Organic"},
			TransactionFee: 0.0017,
			Status:         entities.StatusInTransit,
		},
		{
			ProductName:    "Hard Red Wheat",
			Category:       "Grain",
			Farmer:         "Prairie Wind Co-op",
			FarmerAddress:  "0x1b44c2a9e3f7",
			Location:       "Hays, KS",
			HarvestDate:    "2025-07-28",
			Certifications: []string{"Non-GMO Project"},
			TransactionFee: 0.0009,
			Status:         entities.StatusCertified,
		},
		{
			ProductName:    "Fresh Basil",
			Category:       "Herb",
			Farmer:         "Riverbend Greenhouse",
			FarmerAddress:  "0x9ac510dd6b21",
			Location:       "Eugene, OR",
			HarvestDate:    "2025-10-20",
			Certifications: nil,
			TransactionFee: 0.0005,
			Status:         entities.StatusDelivered,
		},
	}
	for i, seed := range seeds {
		seed.OutboxID = fmt.Sprintf("seed-%03d", i+1)
		_, _ = s.appendLocked(seed, now.Add(-time.Duration(len(seeds)-i)*24*time.Hour))
	}

	// Legacy import awaiting its first verification.
	s.sequence++
	legacyID := fmt.Sprintf("BLK%03d", s.sequence)
	legacy := entities.TraceabilityRecord{
		ID:             legacyID,
		ProductName:    "Raw Goat Milk",
		Category:       "Dairy",
		Farmer:         "Hilltop Dairy",
		FarmerAddress:  "0x77e1f4b20c55",
		Location:       "Barre, VT",
		HarvestDate:    "2025-10-25",
		Timestamp:      now.Add(-12 * time.Hour),
		Status:         entities.StatusInTransit,
		Verified:       false,
		TransactionFee: 0.0012,
		Verifications:  0,
	}
	legacy.BlockHash = services.BlockHash(legacy)
	legacy.TxHash = services.TxHash(legacy)
	s.records[legacyID] = legacy
	s.order = append(s.order, legacyID)
}

func (s *Store) appendOutboxLocked(
	outboxID string,
	record entities.TraceabilityRecord,
	now time.Time,
	build func(string, entities.TraceabilityRecord, time.Time) (ports.RecordEvent, error),
) {
	if outboxID == "" {
		return
	}
	envelope, err := build(outboxID, record, now)
	if err != nil {
		return
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:  outboxID,
			EventType: envelope.EventType,
			Payload:   payload,
			CreatedAt: now,
		},
	})
}

func cloneRecord(record entities.TraceabilityRecord) entities.TraceabilityRecord {
	clone := record
	clone.Certifications = append([]string(nil), record.Certifications...)
	if record.LastVerified != nil {
		verifiedAt := *record.LastVerified
		clone.LastVerified = &verifiedAt
	}
	return clone
}
