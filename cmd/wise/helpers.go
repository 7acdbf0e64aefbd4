package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/waste-wise/internal/cli"
	"github.com/Veraticus/waste-wise/internal/config"
	"github.com/Veraticus/waste-wise/internal/history"
	"github.com/Veraticus/waste-wise/internal/preferences"
	"github.com/Veraticus/waste-wise/internal/stats"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// app bundles the stores every command works against.
type app struct {
	cfg      *config.Config
	records  storage.RecordStore
	history  *history.Store
	stats    *stats.Engine
	prefs    *preferences.Store
	renderer *cli.Renderer
}

// loadConfig decodes and validates the viper configuration, honoring
// --ephemeral.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		cfg.Database.Backend = storage.BackendMemory
	}
	return cfg, nil
}

// initStorage opens the configured backend.
func initStorage(ctx context.Context, cfg *config.Config) (storage.RecordStore, error) {
	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Database.Backend, err)
	}
	return store, nil
}

// openApp loads configuration and storage. The returned cleanup closes the
// store.
func openApp(cmd *cobra.Command) (*app, func(), error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	records, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.Default()
	a := &app{
		cfg:     cfg,
		records: records,
		history: history.NewStore(records, history.WithLimit(cfg.History.Limit), history.WithLogger(logger)),
		stats:   stats.NewEngine(records, stats.WithLocation(loc), stats.WithLogger(logger)),
		prefs:   preferences.NewStore(records, logger),
	}
	displayTheme = a.prefs.Theme(ctx)
	a.renderer = cli.NewRenderer(cmd.OutOrStdout(), displayTheme, loc)

	cleanup := func() {
		if err := records.Close(); err != nil {
			slog.Warn("Failed to close storage", "error", err)
		}
	}
	return a, cleanup, nil
}

// styles returns the styles for the persisted theme.
func (a *app) styles() cli.Styles {
	return a.renderer.Styles()
}
