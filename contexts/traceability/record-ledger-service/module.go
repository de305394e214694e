package recordledger

import (
	"log/slog"
	"time"

	httpadapter "agritrace/contexts/traceability/record-ledger-service/adapters/http"
	"agritrace/contexts/traceability/record-ledger-service/adapters/memory"
	"agritrace/contexts/traceability/record-ledger-service/application/commands"
	"agritrace/contexts/traceability/record-ledger-service/application/queries"
	"agritrace/contexts/traceability/record-ledger-service/application/workers"
	"agritrace/contexts/traceability/record-ledger-service/ports"
)

// Dependencies lists the ports the module needs from its host.
type Dependencies struct {
	Records        ports.Repository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// Module exposes the ledger's transport handler plus the repository handle
// the insights module reads through.
type Module struct {
	Handler httpadapter.Handler
	Records ports.Repository

	// Store is set only by NewInMemoryModule; hosts use it for demo seeding.
	Store *memory.Store
}

// NewModule wires the ledger use cases against the supplied ports.
func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateRecord: commands.CreateRecordUseCase{
				Records:        deps.Records,
				Idempotency:    deps.Idempotency,
				Clock:          deps.Clock,
				IDGen:          deps.IDGenerator,
				IdempotencyTTL: deps.IdempotencyTTL,
				Logger:         deps.Logger,
			},
			VerifyRecord: commands.VerifyRecordUseCase{
				Records: deps.Records,
				Clock:   deps.Clock,
				IDGen:   deps.IDGenerator,
				Logger:  deps.Logger,
			},
			GetRecord: queries.GetRecordUseCase{
				Records: deps.Records,
				Logger:  deps.Logger,
			},
			ListRecords: queries.ListRecordsUseCase{
				Records: deps.Records,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
		Records: deps.Records,
	}
}

// NewInMemoryModule wires the module on the in-memory store. The store
// doubles as repository, idempotency store, clock, and id generator.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Records:     store,
		Idempotency: store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

// NewOutboxRelay builds the relay worker over the given outbox source and
// publisher. cmd/worker drives it on a ticker.
func NewOutboxRelay(
	outbox ports.OutboxRepository,
	publisher ports.RecordEventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) workers.OutboxRelay {
	return workers.OutboxRelay{
		Outbox:    outbox,
		Publisher: publisher,
		Clock:     clock,
		Topic:     "trace.records",
		BatchSize: 50,
		Logger:    logger,
	}
}
