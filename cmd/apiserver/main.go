// apiserver runs the resolution API server directly, without the CLI
// wrapper.  Configuration comes from the config file and TAXVIEW_*
// environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appbuilder "github.com/agrabowski5/TaxonomyViewing/internal/application/builder"
	appenviron "github.com/agrabowski5/TaxonomyViewing/internal/application/environ"
	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/config"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/dataloader"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/prometheus"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/agrabowski5/TaxonomyViewing/internal/interfaces/http"
	"github.com/agrabowski5/TaxonomyViewing/internal/interfaces/http/handlers"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	registry := taxonomy.Default()
	loader := dataloader.NewLoader(cfg.Data.Dir, registry, logger)
	snap, err := loader.Load()
	if err != nil {
		return err
	}
	store := dataloader.NewStore(snap)

	var metrics *prometheus.Metrics
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewMetrics()
		for id, lookup := range snap.Lookups {
			metrics.SetDatasetEntries(string(id), len(lookup))
		}
	}

	if cfg.Data.Watch {
		watcher, err := dataloader.NewWatcher(loader, store, metrics, cfg.Data.WatchDebounce, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	library, err := sqlite.Open(cfg.Builder.SQLitePath, logger)
	if err != nil {
		return err
	}
	defer library.Close()

	mappingSvc := appmapping.NewService(registry, store, metrics, logger)
	environSvc := appenviron.NewService(registry, store, logger)
	builderSvc := appbuilder.NewService(library, mappingSvc, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		TaxonomyHandler: handlers.NewTaxonomyHandler(mappingSvc),
		MappingHandler:  handlers.NewMappingHandler(mappingSvc),
		EnvironHandler:  handlers.NewEnvironHandler(environSvc),
		BuilderHandler:  handlers.NewBuilderHandler(builderSvc),
		HealthHandler:   handlers.NewHealthHandler(store, version),
		Logger:          logger,
		Metrics:         metrics,
		MetricsPath:     cfg.Metrics.Path,
		Mode:            cfg.Server.Mode,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Stop(ctx)
}
