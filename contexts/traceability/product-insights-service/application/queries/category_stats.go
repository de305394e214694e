package queries

import (
	"context"
	"log/slog"

	application "agritrace/contexts/traceability/product-insights-service/application"
	"agritrace/contexts/traceability/product-insights-service/ports"
)

// CategoryStat is one slice of the category distribution. Percentage is
// over all records and is 0 when the ledger is empty.
type CategoryStat struct {
	Category   string
	Count      int
	Percentage float64
}

// CategoryStatsUseCase computes the per-category record distribution.
// Every known category appears in the result, zero count included, so
// dashboards render a stable axis regardless of ledger contents.
type CategoryStatsUseCase struct {
	Source ports.RecordSource
	Logger *slog.Logger
}

func (uc CategoryStatsUseCase) Execute(ctx context.Context) ([]CategoryStat, error) {
	logger := application.ResolveLogger(uc.Logger)

	categories, err := uc.Source.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	records, err := uc.Source.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(categories))
	order := make([]string, 0, len(categories))
	for _, category := range categories {
		if _, seen := counts[category]; seen {
			continue
		}
		counts[category] = 0
		order = append(order, category)
	}
	for _, record := range records {
		if _, known := counts[record.Category]; !known {
			// Legacy imports can carry categories outside the current
			// catalog; surface them rather than dropping their counts.
			order = append(order, record.Category)
		}
		counts[record.Category]++
	}

	total := len(records)
	stats := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		stat := CategoryStat{Category: category, Count: counts[category]}
		if total > 0 {
			stat.Percentage = float64(stat.Count) / float64(total) * 100
		}
		stats = append(stats, stat)
	}

	logger.Debug("category stats computed",
		"event", "insights_category_stats_computed",
		"module", "traceability/product-insights-service",
		"layer", "application",
		"categories", len(stats),
		"records", total,
	)
	return stats, nil
}
