package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rmsp-tools/registry/internal/config"
	"github.com/rmsp-tools/registry/internal/db"
	"github.com/rmsp-tools/registry/internal/registry"
	"github.com/rmsp-tools/registry/internal/repository"
	"github.com/rmsp-tools/registry/internal/snapshot"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	snapshotDir := flag.String("dir", "", "snapshot directory (overrides config)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *snapshotDir != "" {
		cfg.Loader.SnapshotDir = *snapshotDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	store := repository.NewPostgresStore(conn)
	loadLog := repository.NewLoadLogRepository(conn)
	loader := snapshot.NewLoader(store, registry.NewNormalizer(nil), logger,
		snapshot.WithBatchSize(cfg.Loader.BatchSize),
		snapshot.WithLoadLog(loadLog))

	logger.Info("loading snapshot", zap.String("dir", cfg.Loader.SnapshotDir))

	summary, err := loader.LoadSnapshot(ctx, cfg.Loader.SnapshotDir)
	if err != nil {
		if errors.Is(err, snapshot.ErrEmptySnapshot) {
			logger.Fatal("snapshot yielded no records",
				zap.Int("files", summary.FilesScanned),
				zap.Int("rows", summary.RowsRead),
				zap.Error(err))
		}
		logger.Fatal("snapshot load failed", zap.Error(err))
	}

	if err := store.EnsureInnIndex(ctx); err != nil {
		logger.Fatal("failed to ensure inn index", zap.Error(err))
	}

	logger.Info("snapshot loaded",
		zap.String("batch_id", summary.BatchID.String()),
		zap.Int("files", summary.FilesScanned),
		zap.Int("rows", summary.RowsRead),
		zap.Int("loaded", summary.Loaded),
		zap.Int("rejected", summary.Rejected),
		zap.Int("conflicts", summary.Conflicts),
		zap.Time("snapshot_date", summary.SnapshotDate),
		zap.Duration("elapsed", summary.Elapsed))
}
