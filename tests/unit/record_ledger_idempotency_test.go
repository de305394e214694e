package unit

import (
	"context"
	"testing"
	"time"

	"agritrace/contexts/traceability/record-ledger-service/adapters/memory"
	"agritrace/contexts/traceability/record-ledger-service/application/commands"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// capturingLedgerRepository records the input passed to CreateRecord so tests
// can assert what rides the repository call.
type capturingLedgerRepository struct {
	*memory.Store
	lastCreate ports.CreateRecordInput
}

func (r *capturingLedgerRepository) CreateRecord(ctx context.Context, input ports.CreateRecordInput, now time.Time) (entities.TraceabilityRecord, error) {
	r.lastCreate = input
	return r.Store.CreateRecord(ctx, input, now)
}

// The idempotency row rides the CreateRecord call so record and row commit
// in the same critical section.
func TestLedgerCreatePersistsIdempotencyRowWithRecord(t *testing.T) {
	store := memory.NewStore()
	repo := &capturingLedgerRepository{Store: store}
	uc := commands.CreateRecordUseCase{
		Records:     repo,
		Idempotency: store,
		Clock:       store,
		IDGen:       store,
	}

	cmd := commands.CreateRecordCommand{
		IdempotencyKey: "atomic-create-1",
		ProductName:    "Organic Fuji Apples",
		Category:       "Fruit",
		Farmer:         "Green Valley Farm",
		TransactionFee: 0.0021,
	}

	before := time.Now().UTC()
	first, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	if first.Replayed {
		t.Fatal("first create must not be a replay")
	}

	if repo.lastCreate.IdempotencyKey != "atomic-create-1" {
		t.Fatalf("expected idempotency key on the repository input, got %q", repo.lastCreate.IdempotencyKey)
	}
	if repo.lastCreate.RequestHash == "" {
		t.Fatal("expected request hash on the repository input")
	}
	if !repo.lastCreate.IdempotencyExpiresAt.After(before) {
		t.Fatalf("expected a future idempotency expiry, got %v", repo.lastCreate.IdempotencyExpiresAt)
	}

	// The row written by the repository serves the replay.
	second, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("replayed create failed: %v", err)
	}
	if !second.Replayed {
		t.Fatal("expected same-key retry to replay")
	}
	if second.Record.ID != first.Record.ID {
		t.Fatalf("replay returned %s, want %s", second.Record.ID, first.Record.ID)
	}

	records, err := store.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single ledger record after retry, got %d", len(records))
	}
}
