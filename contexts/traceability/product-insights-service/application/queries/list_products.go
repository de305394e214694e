package queries

import (
	"context"
	"log/slog"
	"time"

	application "agritrace/contexts/traceability/product-insights-service/application"
	"agritrace/contexts/traceability/product-insights-service/ports"
)

// Product verification statuses as rendered to consumers.
const (
	ProductStatusVerified = "verified"
	ProductStatusPending  = "pending"
)

// ProductView is the consumer-facing projection of a ledger record. Status
// collapses the verification flag into the two states storefronts show.
type ProductView struct {
	ID             string
	ProductName    string
	Category       string
	Farmer         string
	Location       string
	HarvestDate    string
	Certifications []string
	BlockHash      string
	Timestamp      time.Time
	Status         string
	Verifications  int
}

// ListProductsUseCase projects every ledger record into a ProductView.
type ListProductsUseCase struct {
	Source ports.RecordSource
	Logger *slog.Logger
}

func (uc ListProductsUseCase) Execute(ctx context.Context) ([]ProductView, error) {
	logger := application.ResolveLogger(uc.Logger)

	records, err := uc.Source.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(records))
	for _, record := range records {
		views = append(views, toProductView(record))
	}

	logger.Debug("products listed",
		"event", "insights_products_listed",
		"module", "traceability/product-insights-service",
		"layer", "application",
		"count", len(views),
	)
	return views, nil
}

func toProductView(record ports.TraceRecord) ProductView {
	status := ProductStatusPending
	if record.Verified {
		status = ProductStatusVerified
	}
	return ProductView{
		ID:             record.ID,
		ProductName:    record.ProductName,
		Category:       record.Category,
		Farmer:         record.Farmer,
		Location:       record.Location,
		HarvestDate:    record.HarvestDate,
		Certifications: record.Certifications,
		BlockHash:      record.BlockHash,
		Timestamp:      record.Timestamp,
		Status:         status,
		Verifications:  record.Verifications,
	}
}
