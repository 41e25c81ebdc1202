// Package main is the entry point for the Hadir attendance engine.
//
// Startup order matters: storage first, then the in-memory directory loaded
// from it, then the id registry seeded from the loaded students, and only
// then the scanner loop that feeds attendance into the application facade.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hadir-app/hadir/config"
	"github.com/hadir-app/hadir/internal/application"
	"github.com/hadir-app/hadir/internal/application/command"
	"github.com/hadir-app/hadir/internal/domain/identity"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/infrastructure/export"
	"github.com/hadir-app/hadir/internal/infrastructure/messaging"
	"github.com/hadir-app/hadir/internal/infrastructure/notify"
	"github.com/hadir-app/hadir/internal/infrastructure/persistence"
	"github.com/hadir-app/hadir/internal/infrastructure/persistence/postgres"
	"github.com/hadir-app/hadir/internal/infrastructure/persistence/redis"
	"github.com/hadir-app/hadir/internal/infrastructure/qr"
	"github.com/hadir-app/hadir/internal/infrastructure/scanner"
	"github.com/hadir-app/hadir/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "hadir: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Log.Level),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting", logger.String("app", cfg.App.Name), logger.String("backend", cfg.Storage.Backend))

	backend, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	store := persistence.WithRetry(backend, log)

	groups, students, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	dir := roster.Load(groups, students)
	log.Info("state loaded",
		logger.Int("groups", dir.GroupCount()),
		logger.Int("students", dir.StudentCount()),
	)

	registry := identity.NewRegistry()
	for _, s := range dir.Students() {
		registry.Observe(s.ID)
	}

	encoder, err := qr.NewEncoder(cfg.Paths.StudentsDir)
	if err != nil {
		return err
	}

	bus := messaging.New(messaging.Config{Logger: log})
	defer bus.Close()
	if err := notify.NewEventLogger(log).Register(bus); err != nil {
		return fmt.Errorf("register audit subscriber: %w", err)
	}

	app := application.New(application.Deps{
		Directory:  dir,
		Store:      store,
		Registry:   registry,
		Encoder:    encoder,
		Notifier:   notify.NewLogNotifier(log),
		Events:     bus,
		Exporter:   export.NewExcelExporter(),
		ReportsDir: cfg.Paths.ReportsDir,
	})

	if cfg.Scanner.Enabled {
		intake, err := scanner.New(cfg.Paths.ScanDir, qr.NewDecoder(), func(ctx context.Context, studentID int) error {
			_, err := app.RecordAttendance(ctx, command.RecordAttendanceCommand{StudentID: studentID})
			return err
		}, log)
		if err != nil {
			return err
		}
		return intake.Run(ctx)
	}

	log.Info("scanner disabled, waiting for shutdown signal")
	<-ctx.Done()
	return ctx.Err()
}

// openStore builds the configured persistence backend.
func openStore(ctx context.Context, cfg *config.Config) (roster.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pgCfg := postgres.DefaultConfig()
		pgCfg.URL = cfg.Database.URL
		pgCfg.MaxConns = int32(cfg.Database.MaxConns)
		pgCfg.ConnectTimeout = cfg.Database.ConnectTimeout
		store, err := postgres.NewStore(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendRedis:
		rdCfg := redis.DefaultConfig()
		rdCfg.URL = cfg.Redis.URL
		rdCfg.DialTimeout = cfg.Redis.DialTimeout
		store, err := redis.NewStore(ctx, rdCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
