package httpadapter

import (
	"context"
	"log/slog"

	application "agritrace/contexts/traceability/product-insights-service/application"
	"agritrace/contexts/traceability/product-insights-service/application/queries"
	httptransport "agritrace/contexts/traceability/product-insights-service/transport/http"
)

// Handler maps HTTP DTOs to insights queries.
type Handler struct {
	ListProducts   queries.ListProductsUseCase
	FilterProducts queries.FilterProductsUseCase
	CategoryStats  queries.CategoryStatsUseCase
	Logger         *slog.Logger
}

// ListProductsHandler serves the product list, applying category/search
// filters when either query parameter is present.
func (h Handler) ListProductsHandler(
	ctx context.Context,
	category string,
	search string,
) (httptransport.ListProductsResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	var (
		views []queries.ProductView
		err   error
	)
	if category == "" && search == "" {
		views, err = h.ListProducts.Execute(ctx)
	} else {
		views, err = h.FilterProducts.Execute(ctx, queries.FilterProductsQuery{
			Category: category,
			Search:   search,
		})
	}
	if err != nil {
		logger.Error("http product list failed",
			"event", "insights_http_list_failed",
			"module", "traceability/product-insights-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.ListProductsResponse{}, err
	}

	products := make([]httptransport.ProductDTO, 0, len(views))
	for _, view := range views {
		products = append(products, toProductDTO(view))
	}
	return httptransport.ListProductsResponse{Products: products, Total: len(products)}, nil
}

// CategoryStatsHandler serves the per-category distribution.
func (h Handler) CategoryStatsHandler(ctx context.Context) (httptransport.CategoryStatsResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	stats, err := h.CategoryStats.Execute(ctx)
	if err != nil {
		logger.Error("http category stats failed",
			"event", "insights_http_stats_failed",
			"module", "traceability/product-insights-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.CategoryStatsResponse{}, err
	}

	dtos := make([]httptransport.CategoryStatDTO, 0, len(stats))
	total := 0
	for _, stat := range stats {
		total += stat.Count
		dtos = append(dtos, httptransport.CategoryStatDTO{
			Category:   stat.Category,
			Count:      stat.Count,
			Percentage: stat.Percentage,
		})
	}
	return httptransport.CategoryStatsResponse{Stats: dtos, TotalRecords: total}, nil
}

func toProductDTO(view queries.ProductView) httptransport.ProductDTO {
	return httptransport.ProductDTO{
		ID:             view.ID,
		ProductName:    view.ProductName,
		Category:       view.Category,
		Farmer:         view.Farmer,
		Location:       view.Location,
		HarvestDate:    view.HarvestDate,
		Certifications: view.Certifications,
		BlockHash:      view.BlockHash,
		Timestamp:      view.Timestamp,
		Status:         view.Status,
		Verifications:  view.Verifications,
	}
}
