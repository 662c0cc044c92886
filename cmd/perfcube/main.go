package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/perfcube-lab/perfcube/internal/catalog"
	"github.com/perfcube-lab/perfcube/internal/core/aggregation"
	corecfg "github.com/perfcube-lab/perfcube/internal/core/config"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
	"github.com/perfcube-lab/perfcube/internal/core/storage/postgres"
	"github.com/perfcube-lab/perfcube/internal/ingestion"
	"github.com/perfcube-lab/perfcube/internal/migrations"
	"github.com/perfcube-lab/perfcube/internal/projection"
	"github.com/perfcube-lab/perfcube/internal/server"
)

func main() {
	configPath := flag.String("config", "perfcube.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations, then validate the schema they produced
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	if err := dbAdapter.Prepare(); err != nil {
		slog.Error("Failed to prepare record storage", "error", err)
		os.Exit(1)
	}

	// 3. Load the test/site/platform catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("Failed to load catalog", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded",
		"tests", len(cat.Tests()),
		"sites", len(cat.Sites()),
		"platforms", len(cat.Platforms()),
		"combos", len(cat.Combos()))
	for name, sum := range cat.Fingerprints() {
		slog.Info("[Catalog] Loaded file", "file", name, "sha256", sum)
	}

	// 4. Reference values: catalog file or postgres table
	var (
		references      storage.ReferenceSource = cat
		referenceWriter storage.ReferenceWriter
	)
	if cfg.Reference.SourceType == "postgres" {
		refAdapter := postgres.NewReferenceAdapter(dbAdapter.DB())
		references = refAdapter
		referenceWriter = refAdapter
	}
	slog.Info("Reference source selected", "type", cfg.Reference.SourceType)

	// 5. Metrics for the cube pipeline
	aggregation.InitMetrics(prometheus.DefaultRegisterer)

	// 6. Initialize Ingestion
	ingestionSvc := ingestion.NewService(dbAdapter, referenceWriter, cfg.Server.MaxBodySizeMB)

	// 7. Initialize Projection (summary API)
	projectionSvc := projection.NewService(cat, dbAdapter, references, projection.Settings{
		Granularity:        cfg.Aggregation.Granularity(),
		DefaultDays:        cfg.Aggregation.DefaultDays,
		MaxDays:            cfg.Aggregation.MaxDays,
		Options:            cfg.Aggregation.Options(),
		DashboardBrowser:   cfg.Dashboard.Browser,
		DashboardTests:     cfg.Dashboard.Tests,
		DashboardPlatforms: cfg.Dashboard.Platforms,
	})

	// 8. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode, nil)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 9. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
