package httpadapter

import (
	"context"
	"log/slog"

	application "agritrace/contexts/traceability/record-ledger-service/application"
	"agritrace/contexts/traceability/record-ledger-service/application/commands"
	"agritrace/contexts/traceability/record-ledger-service/application/queries"
	"agritrace/contexts/traceability/record-ledger-service/domain/entities"
	httptransport "agritrace/contexts/traceability/record-ledger-service/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	CreateRecord commands.CreateRecordUseCase
	VerifyRecord commands.VerifyRecordUseCase
	GetRecord    queries.GetRecordUseCase
	ListRecords  queries.ListRecordsUseCase
	Logger       *slog.Logger
}

// CreateRecordHandler appends one record to the ledger.
func (h Handler) CreateRecordHandler(
	ctx context.Context,
	idempotencyKey string,
	request httptransport.CreateRecordRequest,
) (httptransport.CreateRecordResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http record create received",
		"event", "ledger_http_create_received",
		"module", "traceability/record-ledger-service",
		"layer", "transport",
		"product_name", request.ProductName,
		"category", request.Category,
	)

	result, err := h.CreateRecord.Execute(ctx, commands.CreateRecordCommand{
		IdempotencyKey: idempotencyKey,
		ProductName:    request.ProductName,
		Category:       request.Category,
		Farmer:         request.Farmer,
		FarmerAddress:  request.FarmerAddress,
		Location:       request.Location,
		HarvestDate:    request.HarvestDate,
		Certifications: request.Certifications,
		TransactionFee: request.TransactionFee,
		Status:         request.Status,
	})
	if err != nil {
		logger.Error("http record create failed",
			"event", "ledger_http_create_failed",
			"module", "traceability/record-ledger-service",
			"layer", "transport",
			"product_name", request.ProductName,
			"error", err.Error(),
		)
		return httptransport.CreateRecordResponse{}, err
	}
	return httptransport.CreateRecordResponse{
		Record:   toRecordDTO(result.Record),
		Replayed: result.Replayed,
	}, nil
}

// VerifyRecordHandler applies one verification increment.
func (h Handler) VerifyRecordHandler(
	ctx context.Context,
	recordID string,
	verifierRole string,
) (httptransport.VerifyRecordResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http record verify received",
		"event", "ledger_http_verify_received",
		"module", "traceability/record-ledger-service",
		"layer", "transport",
		"record_id", recordID,
		"verifier_role", verifierRole,
	)

	record, err := h.VerifyRecord.Execute(ctx, commands.VerifyRecordCommand{
		RecordID:     recordID,
		VerifierRole: verifierRole,
	})
	if err != nil {
		logger.Error("http record verify failed",
			"event", "ledger_http_verify_failed",
			"module", "traceability/record-ledger-service",
			"layer", "transport",
			"record_id", recordID,
			"error", err.Error(),
		)
		return httptransport.VerifyRecordResponse{}, err
	}
	return httptransport.VerifyRecordResponse{Record: toRecordDTO(record)}, nil
}

// GetRecordHandler resolves one record by id.
func (h Handler) GetRecordHandler(ctx context.Context, recordID string) (httptransport.RecordDTO, error) {
	record, err := h.GetRecord.Execute(ctx, recordID)
	if err != nil {
		return httptransport.RecordDTO{}, err
	}
	return toRecordDTO(record), nil
}

// ListRecordsHandler returns the full ledger snapshot.
func (h Handler) ListRecordsHandler(ctx context.Context) (httptransport.ListRecordsResponse, error) {
	records, err := h.ListRecords.Execute(ctx)
	if err != nil {
		return httptransport.ListRecordsResponse{}, err
	}
	items := make([]httptransport.RecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, toRecordDTO(record))
	}
	return httptransport.ListRecordsResponse{Records: items}, nil
}

func toRecordDTO(record entities.TraceabilityRecord) httptransport.RecordDTO {
	return httptransport.RecordDTO{
		ID:             record.ID,
		ProductName:    record.ProductName,
		Category:       record.Category,
		Farmer:         record.Farmer,
		FarmerAddress:  record.FarmerAddress,
		Location:       record.Location,
		HarvestDate:    record.HarvestDate,
		Certifications: record.Certifications,
		BlockHash:      record.BlockHash,
		TxHash:         record.TxHash,
		Timestamp:      record.Timestamp,
		Status:         record.Status,
		Verified:       record.Verified,
		TransactionFee: record.TransactionFee,
		Verifications:  record.Verifications,
		LastVerified:   record.LastVerified,
		VerifiedBy:     record.VerifiedBy,
	}
}
