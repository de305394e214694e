package unit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	recordledger "agritrace/contexts/traceability/record-ledger-service"
	"agritrace/contexts/traceability/record-ledger-service/adapters/memory"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	httptransport "agritrace/contexts/traceability/record-ledger-service/transport/http"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

func newFixedClockLedger(at time.Time) recordledger.Module {
	store := memory.NewStore()
	module := recordledger.NewModule(recordledger.Dependencies{
		Records:     store,
		Idempotency: store,
		Clock:       fixedClock{at: at},
		IDGenerator: store,
	})
	module.Store = store
	return module
}

func createRecord(t *testing.T, module recordledger.Module, key string, req httptransport.CreateRecordRequest) httptransport.CreateRecordResponse {
	t.Helper()
	resp, err := module.Handler.CreateRecordHandler(context.Background(), key, req)
	if err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	return resp
}

func appleRecordRequest() httptransport.CreateRecordRequest {
	return httptransport.CreateRecordRequest{
		ProductName:    "Organic Fuji Apples",
		Category:       "Fruit",
		Farmer:         "Green Valley Farm",
		FarmerAddress:  "0x4f2a91bc77d1",
		Location:       "Yakima, WA",
		HarvestDate:    "2025-09-14",
		Certifications: []string{"USDA Organic"},
		TransactionFee: 0.0021,
	}
}

func TestLedgerAssignsSequentialRecordIDs(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	for i := 1; i <= 3; i++ {
		req := appleRecordRequest()
		req.ProductName = fmt.Sprintf("Lot %d", i)
		resp := createRecord(t, module, fmt.Sprintf("key-%d", i), req)

		want := fmt.Sprintf("BLK%03d", i)
		if resp.Record.ID != want {
			t.Fatalf("expected record id %s, got %s", want, resp.Record.ID)
		}
	}
}

func TestLedgerCreatedRecordIsVerified(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	resp := createRecord(t, module, "key-verified", appleRecordRequest())
	if !resp.Record.Verified {
		t.Fatalf("expected new record to be verified")
	}
	if resp.Record.Verifications != 1 {
		t.Fatalf("expected verifications=1 at creation, got %d", resp.Record.Verifications)
	}
	if !strings.HasPrefix(resp.Record.BlockHash, "0x") || !strings.HasPrefix(resp.Record.TxHash, "0x") {
		t.Fatalf("expected 0x-prefixed hashes, got %s / %s", resp.Record.BlockHash, resp.Record.TxHash)
	}
	if resp.Record.BlockHash == resp.Record.TxHash {
		t.Fatalf("expected distinct block and tx hashes")
	}
}

func TestLedgerHashesAreDeterministic(t *testing.T) {
	at := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)

	first := createRecord(t, newFixedClockLedger(at), "key-hash", appleRecordRequest())
	second := createRecord(t, newFixedClockLedger(at), "key-hash", appleRecordRequest())

	if first.Record.BlockHash != second.Record.BlockHash {
		t.Fatalf("block hashes diverged: %s vs %s", first.Record.BlockHash, second.Record.BlockHash)
	}
	if first.Record.TxHash != second.Record.TxHash {
		t.Fatalf("tx hashes diverged: %s vs %s", first.Record.TxHash, second.Record.TxHash)
	}
}

func TestLedgerGetUnknownRecord(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	_, err := module.Handler.GetRecordHandler(context.Background(), "BLK999")
	if !errors.Is(err, domainerrors.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLedgerRejectsInvalidInput(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	missingName := appleRecordRequest()
	missingName.ProductName = "   "
	_, err := module.Handler.CreateRecordHandler(context.Background(), "key-a", missingName)
	if !errors.Is(err, domainerrors.ErrInvalidRecordInput) {
		t.Fatalf("expected ErrInvalidRecordInput for blank product name, got %v", err)
	}

	badCategory := appleRecordRequest()
	badCategory.Category = "Mineral"
	_, err = module.Handler.CreateRecordHandler(context.Background(), "key-b", badCategory)
	if !errors.Is(err, domainerrors.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	negativeFee := appleRecordRequest()
	negativeFee.TransactionFee = -0.01
	_, err = module.Handler.CreateRecordHandler(context.Background(), "key-c", negativeFee)
	if !errors.Is(err, domainerrors.ErrInvalidRecordInput) {
		t.Fatalf("expected ErrInvalidRecordInput for negative fee, got %v", err)
	}

	_, err = module.Handler.CreateRecordHandler(context.Background(), "", appleRecordRequest())
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected ErrIdempotencyKeyRequired, got %v", err)
	}
}

func TestLedgerCreateIdempotencyReplay(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	first := createRecord(t, module, "key-replay", appleRecordRequest())
	if first.Replayed {
		t.Fatalf("expected first create not to be a replay")
	}

	second := createRecord(t, module, "key-replay", appleRecordRequest())
	if !second.Replayed {
		t.Fatalf("expected replayed response")
	}
	if first.Record.ID != second.Record.ID {
		t.Fatalf("expected same record id, got %s and %s", first.Record.ID, second.Record.ID)
	}

	list, err := module.Handler.ListRecordsHandler(context.Background())
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	if len(list.Records) != 1 {
		t.Fatalf("expected replay to append nothing, got %d records", len(list.Records))
	}
}

func TestLedgerCreateIdempotencyConflict(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	createRecord(t, module, "key-conflict", appleRecordRequest())

	changed := appleRecordRequest()
	changed.ProductName = "Different Apples"
	_, err := module.Handler.CreateRecordHandler(context.Background(), "key-conflict", changed)
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict, got %v", err)
	}
}

func TestLedgerVerifyIncrementsCounter(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	created := createRecord(t, module, "key-verify", appleRecordRequest())

	verified, err := module.Handler.VerifyRecordHandler(context.Background(), created.Record.ID, "inspector")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Record.Verifications != 2 {
		t.Fatalf("expected verifications=2, got %d", verified.Record.Verifications)
	}
	if verified.Record.VerifiedBy != "inspector" {
		t.Fatalf("expected verifiedBy=inspector, got %q", verified.Record.VerifiedBy)
	}
	if verified.Record.LastVerified == nil {
		t.Fatalf("expected lastVerified to be set")
	}

	// Verification is not idempotent: every call counts.
	again, err := module.Handler.VerifyRecordHandler(context.Background(), created.Record.ID, "retailer")
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}
	if again.Record.Verifications != 3 {
		t.Fatalf("expected verifications=3, got %d", again.Record.Verifications)
	}
	if again.Record.VerifiedBy != "retailer" {
		t.Fatalf("expected verifiedBy=retailer, got %q", again.Record.VerifiedBy)
	}
}

func TestLedgerVerifyUnknownRecord(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	_, err := module.Handler.VerifyRecordHandler(context.Background(), "BLK999", "inspector")
	if !errors.Is(err, domainerrors.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLedgerListPreservesAppendOrder(t *testing.T) {
	module := recordledger.NewInMemoryModule(nil)

	for i := 1; i <= 4; i++ {
		req := appleRecordRequest()
		req.ProductName = fmt.Sprintf("Lot %d", i)
		createRecord(t, module, fmt.Sprintf("order-%d", i), req)
	}

	list, err := module.Handler.ListRecordsHandler(context.Background())
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	if len(list.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(list.Records))
	}
	for i, record := range list.Records {
		want := fmt.Sprintf("BLK%03d", i+1)
		if record.ID != want {
			t.Fatalf("expected position %d to hold %s, got %s", i, want, record.ID)
		}
	}
}
