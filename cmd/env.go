package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/climassist/internal/catalog"
	"github.com/abhisek/climassist/internal/config"
	"github.com/abhisek/climassist/internal/logging"
	"github.com/abhisek/climassist/internal/progress"
	"github.com/abhisek/climassist/internal/rewards"
	"github.com/abhisek/climassist/internal/store"
)

// environment is what every command needs: configuration, the open store,
// a logger and the trail catalog.
type environment struct {
	cfg     config.Config
	dbPath  string
	store   *store.Store
	logger  *zap.Logger
	catalog *catalog.Catalog
}

// openEnvironment resolves configuration from flags and env vars and opens
// the store. Callers must Close the result.
func openEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbFlag, _ := cmd.Flags().GetString("db")
	dbPath, err := cfg.ResolveDBPath(dbFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.ResolveLogFile(dbPath))
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("db", dbPath),
		zap.Int("modules", cat.Len()))

	return &environment{
		cfg:     cfg,
		dbPath:  dbPath,
		store:   st,
		logger:  logger,
		catalog: cat,
	}, nil
}

// loadCatalog reads the trail file named by --catalog or CLIMASSIST_CATALOG,
// falling back to the built-in trails.
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*catalog.Catalog, error) {
	flag, _ := cmd.Flags().GetString("catalog")
	path := cfg.ResolveCatalogPath(flag)
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// tracker builds the reward service and a progress tracker loaded from the
// store.
func (e *environment) tracker(ctx context.Context) (*progress.Tracker, *rewards.Service, error) {
	repo := e.store.EventRepo()
	svc := rewards.NewService(repo, e.logger)
	tr := progress.NewTracker(e.catalog, repo, svc, e.logger)
	if err := tr.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load progress: %w", err)
	}
	return tr, svc, nil
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store failed", zap.Error(err))
	}
	_ = e.logger.Sync()
}
