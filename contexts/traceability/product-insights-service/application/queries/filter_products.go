package queries

import (
	"context"
	"log/slog"
	"strings"

	application "agritrace/contexts/traceability/product-insights-service/application"
	"agritrace/contexts/traceability/product-insights-service/ports"
)

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "All"

// FilterProductsQuery narrows the product list by category and free-text
// search. Both filters are optional and compose with AND.
type FilterProductsQuery struct {
	Category string
	Search   string
}

// FilterProductsUseCase applies the storefront filter semantics: a
// category of "All" (or empty) passes everything, and the search term
// matches case-insensitively against product name, farmer, location, or
// category.
type FilterProductsUseCase struct {
	Source ports.RecordSource
	Logger *slog.Logger
}

func (uc FilterProductsUseCase) Execute(ctx context.Context, query FilterProductsQuery) ([]ProductView, error) {
	logger := application.ResolveLogger(uc.Logger)

	records, err := uc.Source.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(query.Category)
	search := strings.ToLower(strings.TrimSpace(query.Search))

	views := make([]ProductView, 0, len(records))
	for _, record := range records {
		if category != "" && category != CategoryAll && record.Category != category {
			continue
		}
		if search != "" && !matchesSearch(record, search) {
			continue
		}
		views = append(views, toProductView(record))
	}

	logger.Debug("products filtered",
		"event", "insights_products_filtered",
		"module", "traceability/product-insights-service",
		"layer", "application",
		"category", category,
		"search", query.Search,
		"matched", len(views),
	)
	return views, nil
}

func matchesSearch(record ports.TraceRecord, loweredTerm string) bool {
	for _, field := range []string{
		record.ProductName,
		record.Farmer,
		record.Location,
		record.Category,
	} {
		if strings.Contains(strings.ToLower(field), loweredTerm) {
			return true
		}
	}
	return false
}
