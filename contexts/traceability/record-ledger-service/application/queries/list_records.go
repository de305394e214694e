package queries

import (
	"context"
	"log/slog"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// ListRecordsUseCase returns a stable snapshot of the ledger. The repository
// copies under its read lock, so callers never observe a partially written
// record and are isolated from concurrent writers.
type ListRecordsUseCase struct {
	Records ports.Repository
	Logger  *slog.Logger
}

func (u ListRecordsUseCase) Execute(ctx context.Context) ([]entities.TraceabilityRecord, error) {
	return u.Records.ListRecords(ctx)
}
