package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/scanops/triage/internal/core/config"
	redisclient "github.com/scanops/triage/internal/infra/redis"
	"github.com/scanops/triage/internal/infra/storage"
	"github.com/scanops/triage/internal/infra/storage/memory"
	"github.com/scanops/triage/internal/infra/storage/postgres"
	"github.com/scanops/triage/internal/infra/sysinfo"
	"github.com/scanops/triage/internal/recovery"
)

// Config holds the application configuration.
type Config struct {
	Port     int
	Engine   config.EngineConfig
	Redis    redisclient.Config
	Database postgres.Config
}

// Service wires the recovery engine to its collaborators: escalation sinks,
// the archive, and the observability server. The engine itself stays an
// in-process API for the orchestrator embedding this service.
type Service struct {
	cfg         Config
	engine      *recovery.Engine
	archive     storage.EscalationArchive
	db          *postgres.DB
	redisClient *redisclient.Client
	server      *Server
	log         *slog.Logger
}

// New creates a Service with all dependencies initialized.
func New(cfg Config) (*Service, error) {
	log := slog.Default()

	// 1. Archive: postgres when configured, in-memory otherwise.
	var archive storage.EscalationArchive
	var db *postgres.DB
	sinks := []recovery.EscalationSink{recovery.NewLogSink(log)}

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		repo := postgres.NewEscalationRepo(db)
		archive = repo
		sinks = append(sinks, repo)
		slog.Info("Using PostgreSQL escalation archive")
	} else {
		mem := memory.NewEscalationArchive()
		archive = mem
		sinks = append(sinks, mem)
		slog.Info("Using in-memory escalation archive")
	}

	// 2. Redis escalation queue (optional).
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		sinks = append(sinks, redisclient.NewEscalationQueue(redisClient))
		slog.Info("Escalation queue enabled")
	}

	// 3. Engine.
	engine := recovery.NewEngine(recovery.Options{
		LedgerCapacity: cfg.Engine.LedgerCapacity,
		Selector: recovery.SelectorConfig{
			DiscountBase: cfg.Engine.DiscountBase,
			TimeWeight:   cfg.Engine.TimeWeight,
		},
		Prober: &sysinfo.Prober{DiskPath: cfg.Engine.DiskPath},
		Sinks:  sinks,
		Logger: log,
	})

	s := &Service{
		cfg:         cfg,
		engine:      engine,
		archive:     archive,
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
	s.server = NewServer(s, cfg.Port)
	return s, nil
}

// Engine returns the recovery engine for in-process callers.
func (s *Service) Engine() *recovery.Engine {
	return s.engine
}

// Archive returns the escalation archive.
func (s *Service) Archive() storage.EscalationArchive {
	return s.archive
}

// Start launches the observability server.
func (s *Service) Start(ctx context.Context) error {
	go func() {
		s.log.Info("Observability server listening", "port", s.cfg.Port)
		if err := s.server.Start(); err != nil {
			s.log.Error("Observability server stopped", "error", err)
		}
	}()
	return nil
}

// Stop shuts everything down gracefully.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.server.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close db: %w", err)
		}
	}
	return nil
}
