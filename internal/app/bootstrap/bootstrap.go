package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	authorization "agritrace/contexts/identity-access/authorization-service"
	productinsights "agritrace/contexts/traceability/product-insights-service"
	ledgeradapter "agritrace/contexts/traceability/product-insights-service/adapters/ledger"
	recordledger "agritrace/contexts/traceability/record-ledger-service"
	ledgerevents "agritrace/contexts/traceability/record-ledger-service/adapters/events"
	ledgerpostgres "agritrace/contexts/traceability/record-ledger-service/adapters/postgres"
	ledgerworkers "agritrace/contexts/traceability/record-ledger-service/application/workers"
	"agritrace/contexts/traceability/record-ledger-service/ports"
	"agritrace/internal/platform/config"
	"agritrace/internal/platform/db"
	"agritrace/internal/platform/httpserver"
	"agritrace/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger

	// relay is set only in memory mode, where no worker process exists to
	// drain the outbox.
	relay        *ledgerworkers.OutboxRelay
	pollInterval time.Duration
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  ledgerworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

// BuildAPI assembles the API process. With POSTGRES_DSN set it runs on
// postgres; without it, on the in-memory store (optionally demo-seeded),
// which is the local development mode.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	authModule := authorization.NewInMemoryModule(logger)

	var (
		pg           *db.Postgres
		ledgerModule recordledger.Module
		records      ports.Repository
		relay        *ledgerworkers.OutboxRelay
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		ledgerModule = recordledger.NewInMemoryModule(logger)
		if cfg.SeedDemoData {
			ledgerModule.Store.SeedDemoData()
		}
		records = ledgerModule.Records
		if cfg.EnableLedgerOutboxRelay {
			memoryRelay := recordledger.NewOutboxRelay(
				ledgerModule.Store,
				ledgerevents.NewPublisher(logger),
				ledgerModule.Store,
				logger,
			)
			relay = &memoryRelay
		}
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := ledgerpostgres.Migrate(pg.DB); err != nil {
			_ = pg.Close()
			return nil, err
		}
		repo := ledgerpostgres.NewRepository(pg.DB, logger)
		ledgerModule = recordledger.NewModule(recordledger.Dependencies{
			Records:        repo,
			Idempotency:    repo,
			Clock:          ledgerpostgres.SystemClock{},
			IDGenerator:    ledgerpostgres.UUIDGenerator{},
			IdempotencyTTL: 7 * 24 * time.Hour,
			Logger:         logger,
		})
		records = repo
	}

	insightsModule := productinsights.NewModule(productinsights.Dependencies{
		Source: ledgeradapter.NewSource(records),
		Logger: logger,
	})

	server := httpserver.New(ledgerModule, insightsModule, authModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:       server,
		postgres:     pg,
		logger:       logger,
		relay:        relay,
		pollInterval: 2 * time.Second,
	}, nil
}

// BuildWorker assembles the outbox relay process. It always runs against
// postgres; the in-memory store dies with the API process that owns it.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := ledgerpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres:     pg,
		outboxRelay:  recordledger.NewOutboxRelay(repo, kafka, ledgerpostgres.SystemClock{}, logger),
		relayEnabled: cfg.EnableLedgerOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	if a.relay != nil {
		go a.runRelay(ctx)
	}
	return a.server.Start()
}

func (a *APIApp) runRelay(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		if err := a.relay.RunOnce(ctx); err != nil && a.logger != nil {
			a.logger.Error("in-memory outbox relay pass failed",
				"event", "bootstrap_memory_relay_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"relay_enabled", w.relayEnabled,
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
