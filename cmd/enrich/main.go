package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rmsp-tools/registry/internal/config"
	"github.com/rmsp-tools/registry/internal/db"
	"github.com/rmsp-tools/registry/internal/enrich"
	"github.com/rmsp-tools/registry/internal/repository"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	inputFile := flag.String("input", "", "INN list file, csv or xlsx (overrides config)")
	outputFile := flag.String("output", "", "enriched report file (overrides config)")
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
	if *inputFile != "" {
		cfg.Enrich.InputFile = *inputFile
	}
	if *outputFile != "" {
		cfg.Enrich.OutputFile = *outputFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inns, err := enrich.ReadINNList(cfg.Enrich.InputFile)
	if err != nil {
		logger.Fatal("failed to read input list", zap.Error(err))
	}
	logger.Info("input list read",
		zap.String("file", cfg.Enrich.InputFile),
		zap.Int("inns", len(inns)))

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	matcher := enrich.NewMatcher(repository.NewPostgresStore(conn), logger,
		enrich.WithBatchSize(cfg.Enrich.BatchSize))

	results, err := matcher.Enrich(ctx, inns)
	if err != nil {
		logger.Fatal("enrichment failed", zap.Error(err))
	}

	stats, err := enrich.WriteReport(cfg.Enrich.OutputFile, results)
	if err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}

	logger.Info("enrichment complete",
		zap.String("output", cfg.Enrich.OutputFile),
		zap.Int("processed", stats.Processed),
		zap.Int("found", stats.Found),
		zap.Int("not_found", stats.NotFound))
}
