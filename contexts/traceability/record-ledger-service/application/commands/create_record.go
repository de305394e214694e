package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	application "agritrace/contexts/traceability/record-ledger-service/application"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	domainerrors "agritrace/contexts/traceability/record-ledger-service/domain/errors"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// CreateRecordCommand is the write-model input for ledger appends.
type CreateRecordCommand struct {
	IdempotencyKey string
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

// CreateRecordResult returns the appended record and a replay marker the
// transport layer maps to API semantics.
type CreateRecordResult struct {
	Record   entities.TraceabilityRecord
	Replayed bool
}

// CreateRecordUseCase orchestrates record creation: validation first, then
// sequence allocation inside the repository, so rejected input never burns a
// sequence number. Replay-safe via idempotency key + request hash.
type CreateRecordUseCase struct {
	Records        ports.Repository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func (uc CreateRecordUseCase) Execute(ctx context.Context, cmd CreateRecordCommand) (CreateRecordResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.ProductName) == "" ||
		strings.TrimSpace(cmd.Category) == "" ||
		strings.TrimSpace(cmd.Farmer) == "" ||
		cmd.TransactionFee < 0 {
		logger.Warn("record create validation failed",
			"event", "ledger_record_create_validation_failed",
			"module", "traceability/record-ledger-service",
			"layer", "application",
			"product_name", cmd.ProductName,
			"category", cmd.Category,
		)
		return CreateRecordResult{}, domainerrors.ErrInvalidRecordInput
	}
	if !entities.ProductCategory(cmd.Category).Valid() {
		return CreateRecordResult{}, domainerrors.ErrUnknownCategory
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return CreateRecordResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.now()
	requestHash := hashCreateRecordCommand(cmd)

	record, found, err := uc.Idempotency.Get(ctx, cmd.IdempotencyKey, now)
	if err != nil {
		return CreateRecordResult{}, err
	}
	if found {
		if record.RequestHash != requestHash {
			logger.Warn("record create idempotency conflict",
				"event", "ledger_record_create_idempotency_conflict",
				"module", "traceability/record-ledger-service",
				"layer", "application",
				"idempotency_key", cmd.IdempotencyKey,
			)
			return CreateRecordResult{}, domainerrors.ErrIdempotencyConflict
		}
		var replayed entities.TraceabilityRecord
		if err := json.Unmarshal(record.Payload, &replayed); err != nil {
			return CreateRecordResult{}, err
		}
		logger.Info("record create replayed",
			"event", "ledger_record_create_replayed",
			"module", "traceability/record-ledger-service",
			"layer", "application",
			"record_id", replayed.ID,
			"idempotency_key", cmd.IdempotencyKey,
		)
		return CreateRecordResult{Record: replayed, Replayed: true}, nil
	}

	outboxID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreateRecordResult{}, err
	}

	// The repository persists the idempotency row in the same critical
	// section as the record, so a committed record can always be replayed
	// and a failed commit leaves no key behind.
	created, err := uc.Records.CreateRecord(ctx, ports.CreateRecordInput{
		OutboxID:             outboxID,
		IdempotencyKey:       strings.TrimSpace(cmd.IdempotencyKey),
		RequestHash:          requestHash,
		IdempotencyExpiresAt: now.Add(uc.idempotencyTTL()),

		ProductName:    strings.TrimSpace(cmd.ProductName),
		Category:       strings.TrimSpace(cmd.Category),
		Farmer:         strings.TrimSpace(cmd.Farmer),
		FarmerAddress:  strings.TrimSpace(cmd.FarmerAddress),
		Location:       strings.TrimSpace(cmd.Location),
		HarvestDate:    strings.TrimSpace(cmd.HarvestDate),
		Certifications: cmd.Certifications,
		TransactionFee: cmd.TransactionFee,
		Status:         resolveStatus(cmd.Status),
	}, now)
	if err != nil {
		logger.Error("record create failed",
			"event", "ledger_record_create_failed",
			"module", "traceability/record-ledger-service",
			"layer", "application",
			"product_name", cmd.ProductName,
			"error", err.Error(),
		)
		return CreateRecordResult{}, err
	}

	logger.Info("record appended",
		"event", "ledger_record_created",
		"module", "traceability/record-ledger-service",
		"layer", "application",
		"record_id", created.ID,
		"category", created.Category,
		"farmer", created.Farmer,
	)
	return CreateRecordResult{Record: created}, nil
}

func (uc CreateRecordUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc CreateRecordUseCase) idempotencyTTL() time.Duration {
	if uc.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return uc.IdempotencyTTL
}

func resolveStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return entities.StatusCertified
	}
	return strings.TrimSpace(status)
}

func hashCreateRecordCommand(cmd CreateRecordCommand) string {
	parts := []string{
		"create_record",
		cmd.ProductName,
		cmd.Category,
		cmd.Farmer,
		cmd.FarmerAddress,
		cmd.Location,
		cmd.HarvestDate,
		strings.Join(cmd.Certifications, ","),
		strconv.FormatFloat(cmd.TransactionFee, 'f', -1, 64),
		cmd.Status,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
