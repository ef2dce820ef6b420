package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Tiliavir/mood-journal/internal/catalog"
	"github.com/Tiliavir/mood-journal/internal/config"
	"github.com/Tiliavir/mood-journal/internal/stats"
	"github.com/Tiliavir/mood-journal/internal/storage"
	"github.com/Tiliavir/mood-journal/internal/storage/sqlite"
)

// App bundles the services the CLI works with.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Diary  *catalog.Catalog
	Stats  *stats.Aggregator

	closers []io.Closer
}

// New wires storage, the diary catalog and the statistics aggregator for cfg.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	statsStore, err := a.openStatsStore(cfg)
	if err != nil {
		return nil, err
	}

	a.Stats, err = stats.New(ctx, log, statsStore)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Diary, err = catalog.New(log, storage.NewDiaryStore(cfg.DataDir))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load diary: %w", err)
	}

	log.Debug("app ready",
		slog.String("data_dir", cfg.DataDir),
		slog.String("stats_backend", cfg.Stats.Backend),
	)
	return a, nil
}

func (a *App) openStatsStore(cfg *config.Config) (stats.Store, error) {
	switch cfg.Stats.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(filepath.Join(cfg.DataDir, sqlite.FileName))
		if err != nil {
			return nil, fmt.Errorf("open stats database: %w", err)
		}
		a.closers = append(a.closers, db)
		return db, nil
	default:
		return storage.NewStatsFile(cfg.DataDir), nil
	}
}

// Close releases open stores.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
