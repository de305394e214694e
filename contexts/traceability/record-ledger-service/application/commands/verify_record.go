package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "agritrace/contexts/traceability/record-ledger-service/application"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// VerifyRecordCommand requests one verification increment. Which roles may
// verify is caller policy; the ledger records whoever the caller vouched for.
type VerifyRecordCommand struct {
	RecordID     string
	VerifierRole string
}

// VerifyRecordUseCase applies the increment through the repository, which
// serializes mutations per record. Each call is a distinct verification
// event, so the command is intentionally not idempotent: N calls always add
// N to the counter.
type VerifyRecordUseCase struct {
	Records ports.Repository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc VerifyRecordUseCase) Execute(ctx context.Context, cmd VerifyRecordCommand) (entities.TraceabilityRecord, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.RecordID) == "" || strings.TrimSpace(cmd.VerifierRole) == "" {
		return entities.TraceabilityRecord{}, domainerrors.ErrInvalidRecordInput
	}

	outboxID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.TraceabilityRecord{}, err
	}

	record, err := uc.Records.IncrementVerifications(ctx, ports.VerifyRecordInput{
		RecordID:     strings.TrimSpace(cmd.RecordID),
		VerifierRole: strings.TrimSpace(cmd.VerifierRole),
		OutboxID:     outboxID,
	}, uc.now())
	if err != nil {
		logger.Warn("record verification failed",
			"event", "ledger_record_verify_failed",
			"module", "traceability/record-ledger-service",
			"layer", "application",
			"record_id", cmd.RecordID,
			"verifier_role", cmd.VerifierRole,
			"error", err.Error(),
		)
		return entities.TraceabilityRecord{}, err
	}

	logger.Info("record verified",
		"event", "ledger_record_verified",
		"module", "traceability/record-ledger-service",
		"layer", "application",
		"record_id", record.ID,
		"verifier_role", cmd.VerifierRole,
		"verifications", record.Verifications,
	)
	return record, nil
}

func (uc VerifyRecordUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
