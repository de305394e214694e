// Package ledgeradapter feeds insights queries from the record ledger.
// The bootstrap wires it against the ledger module's repository so both
// contexts keep their own domain types.
package ledgeradapter

import (
	"context"

	productinsights "agritrace/contexts/traceability/product-insights-service/ports"
	ledgerentities "agritrace/contexts/traceability/record-ledger-service/domain/entities"
	ledgerports "agritrace/contexts/traceability/record-ledger-service/ports"
)

// Source adapts the ledger repository into the insights RecordSource port.
type Source struct {
	Records ledgerports.Repository
}

func NewSource(records ledgerports.Repository) Source {
	return Source{Records: records}
}

func (s Source) ListRecords(ctx context.Context) ([]productinsights.TraceRecord, error) {
	records, err := s.Records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]productinsights.TraceRecord, 0, len(records))
	for _, record := range records {
		out = append(out, productinsights.TraceRecord{
			ID:             record.ID,
			ProductName:    record.ProductName,
			Category:       record.Category,
			Farmer:         record.Farmer,
			Location:       record.Location,
			HarvestDate:    record.HarvestDate,
			Certifications: record.Certifications,
			BlockHash:      record.BlockHash,
			Timestamp:      record.Timestamp,
			Status:         record.Status,
			Verified:       record.Verified,
			Verifications:  record.Verifications,
		})
	}
	return out, nil
}

func (s Source) ListCategories(ctx context.Context) ([]string, error) {
	categories := ledgerentities.ProductCategories()
	out := make([]string, 0, len(categories))
	for _, category := range categories {
		out = append(out, string(category))
	}
	return out, nil
}
