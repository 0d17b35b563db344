package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	fundingledger "agora/contexts/finance-core/funding-ledger"
	ledgerpostgres "agora/contexts/finance-core/funding-ledger/adapters/postgres"
	ledgerapp "agora/contexts/finance-core/funding-ledger/application"
	companyregistry "agora/contexts/procurement/company-registry"
	companypostgres "agora/contexts/procurement/company-registry/adapters/postgres"
	projectregistry "agora/contexts/procurement/project-registry"
	projectpostgres "agora/contexts/procurement/project-registry/adapters/postgres"
	projectapp "agora/contexts/procurement/project-registry/application"
	tenderservice "agora/contexts/procurement/tender-service"
	tenderpostgres "agora/contexts/procurement/tender-service/adapters/postgres"
	tenderworkers "agora/contexts/procurement/tender-service/application/workers"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
	"agora/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// tenderEventTopics lists every lifecycle event type the tender module emits.
// The outbox relay publishes each event to a topic named after its type.
var tenderEventTopics = []string{
	"tender.created",
	"tender.approval_vote_cast",
	"tender.approved",
	"tender.declined",
	"tender.proposing_opened",
	"tender.proposal_submitted",
	"tender.proposal_voting_opened",
	"tender.proposal_vote_cast",
	"tender.voting_closed",
	"tender.awarded",
	"tender.admin_changed",
}

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  tenderworkers.OutboxRelay
	auditor      tenderworkers.LifecycleAuditor
	relayEnabled bool
	auditEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	companyRepo := companypostgres.NewRepository(pg.DB, logger)
	companyModule := companyregistry.NewModule(companyregistry.Dependencies{
		Repository: companyRepo,
		Clock:      companypostgres.SystemClock{},
		IDGen:      companypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	projectModule := projectregistry.NewModule(projectregistry.Dependencies{
		Repository: projectpostgres.NewRepository(pg.DB, logger),
		Clock:      projectpostgres.SystemClock{},
		IDGen:      projectpostgres.UUIDGenerator{},
		Logger:     logger,
	})
	ledgerModule := fundingledger.NewModule(fundingledger.Dependencies{
		Repository: ledgerpostgres.NewRepository(pg.DB, logger),
		Clock:      ledgerpostgres.SystemClock{},
		IDGen:      ledgerpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	tenderRepo := tenderpostgres.NewRepository(pg.DB, logger)
	tenderModule := tenderservice.NewModule(tenderservice.Dependencies{
		Tenders:   tenderRepo,
		Directory: companyModule.Service,
		Projects:  projectFactoryBridge{projects: projectModule.Service},
		Ledger:    fundingLedgerBridge{ledger: ledgerModule.Service},
		Outbox:    tenderRepo,
		Clock:     tenderpostgres.SystemClock{},
		IDGen:     tenderpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	server := httpserver.New(
		tenderModule,
		companyModule,
		projectModule,
		ledgerModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

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
		return nil, err
	}

	tenderRepo := tenderpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: tenderworkers.OutboxRelay{
			Outbox:    tenderRepo,
			Publisher: kafka,
			Clock:     tenderpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		auditor: tenderworkers.LifecycleAuditor{
			Subscriber:    kafka,
			Topics:        tenderEventTopics,
			ConsumerGroup: "tender-lifecycle-audit-cg",
			Logger:        logger,
		},
		relayEnabled: cfg.EnableTenderOutboxRelay,
		auditEnabled: cfg.EnableTenderLifecycleAudit,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.auditEnabled {
		if err := w.auditor.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
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

// projectFactoryBridge adapts the project registry service to the tender
// module's outbound port so the tender core never imports another context.
type projectFactoryBridge struct {
	projects projectapp.Service
}

func (b projectFactoryBridge) CreateProject(ctx context.Context, tenderID string, companyID string) (string, error) {
	project, err := b.projects.CreateProject(ctx, tenderID, companyID)
	if err != nil {
		return "", err
	}
	return project.ProjectID, nil
}

func (b projectFactoryBridge) DiscardProject(ctx context.Context, projectID string) error {
	return b.projects.DiscardProject(ctx, projectID)
}

// fundingLedgerBridge adapts the funding ledger service to the tender
// module's disbursement port.
type fundingLedgerBridge struct {
	ledger ledgerapp.Service
}

func (b fundingLedgerBridge) Disburse(ctx context.Context, amount float64, projectID string) error {
	_, err := b.ledger.Disburse(ctx, amount, projectID)
	return err
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
