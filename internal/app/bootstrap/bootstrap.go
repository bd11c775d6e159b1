package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	recordsservice "clinicalh/contexts/clinical-care/records-service"
	postgresadapter "clinicalh/contexts/clinical-care/records-service/adapters/postgres"
	"clinicalh/contexts/clinical-care/records-service/application/workers"
	"clinicalh/internal/platform/config"
	"clinicalh/internal/platform/db"
	"clinicalh/internal/platform/httpserver"
	"clinicalh/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.OutboxRelay
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

	module, err := buildRecordsModule(cfg, pg, nil, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
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

	kafka, err := messaging.NewKafka(nil, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	module, err := buildRecordsModule(cfg, pg, kafka, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	return &WorkerApp{
		postgres:     pg,
		relay:        module.Relay,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func buildRecordsModule(
	cfg config.Config,
	pg *db.Postgres,
	publisher *messaging.Kafka,
	logger *slog.Logger,
) (recordsservice.Module, error) {
	zone, err := time.LoadLocation(cfg.ClinicTimeZone)
	if err != nil {
		return recordsservice.Module{}, errors.New("CLINIC_TIME_ZONE is not a valid IANA zone")
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	deps := recordsservice.Dependencies{
		Repository:            repo,
		Outbox:                repo,
		Clock:                 postgresadapter.SystemClock{},
		IDGenerator:           postgresadapter.UUIDGenerator{},
		AdministratorIdentity: cfg.AdministratorIdentity,
		ReadOnlyIdentity:      cfg.ReadOnlyIdentity,
		ClinicZone:            zone,
		RelayBatchSize:        cfg.OutboxBatchSize,
		Logger:                logger,
	}
	if publisher != nil {
		deps.Publisher = publisher
	}
	return recordsservice.NewModule(deps), nil
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
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	return w.relay.Run(ctx, w.pollInterval)
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
