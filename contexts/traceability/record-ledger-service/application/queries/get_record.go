package queries

import (
	"context"
	"log/slog"
	"strings"

	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

type GetRecordUseCase struct {
	Records ports.Repository
	Logger  *slog.Logger
}

func (u GetRecordUseCase) Execute(ctx context.Context, recordID string) (entities.TraceabilityRecord, error) {
	if strings.TrimSpace(recordID) == "" {
		return entities.TraceabilityRecord{}, domainerrors.ErrRecordNotFound
	}
	return u.Records.GetRecord(ctx, strings.TrimSpace(recordID))
}
