package authorization

import (
	"log/slog"

	httpadapter "agritrace/contexts/identity-access/authorization-service/adapters/http"
	"agritrace/contexts/identity-access/authorization-service/application/queries"
	"agritrace/contexts/identity-access/authorization-service/domain/catalog"
	"agritrace/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Catalog *catalog.Catalog
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Catalog *catalog.Catalog
	Clock   ports.Clock
	Logger  *slog.Logger
}

// NewModule wires the policy queries and transport handler against a loaded
// catalog.
func NewModule(deps Dependencies) Module {
	check := queries.CheckAuthorizationUseCase{
		Catalog: deps.Catalog,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	listEventTypes := queries.ListEventTypesUseCase{
		Catalog: deps.Catalog,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Check:          check,
			ListEventTypes: listEventTypes,
			Logger:         deps.Logger,
		},
		Catalog: deps.Catalog,
	}
}

// NewInMemoryModule builds a development/testing module on the embedded
// catalog. A corrupted embedded catalog is a programmer error and panics.
func NewInMemoryModule(logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Catalog: catalog.MustDefault(),
		Logger:  logger,
	})
}
