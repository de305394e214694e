package productinsights

import (
	"log/slog"

	httpadapter "agritrace/contexts/traceability/product-insights-service/adapters/http"
	"agritrace/contexts/traceability/product-insights-service/application/queries"
	"agritrace/contexts/traceability/product-insights-service/ports"
)

// Dependencies lists the ports the module needs from its host.
type Dependencies struct {
	Source ports.RecordSource
	Logger *slog.Logger
}

// Module exposes the insights transport handler.
type Module struct {
	Handler httpadapter.Handler
}

// NewModule wires the insights queries against the supplied record source.
func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListProducts: queries.ListProductsUseCase{
				Source: deps.Source,
				Logger: deps.Logger,
			},
			FilterProducts: queries.FilterProductsUseCase{
				Source: deps.Source,
				Logger: deps.Logger,
			},
			CategoryStats: queries.CategoryStatsUseCase{
				Source: deps.Source,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}
