package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waste-wise/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Only the SQL backends (sqlite, postgres, mysql) have a schema. Other
commands migrate automatically; this one is useful to prepare a shared
database ahead of time or to check its version.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var store *storage.SQLStorage
	switch cfg.Database.Backend {
	case storage.BackendSQLite:
		store, err = storage.NewSQLiteStorage(cfg.Database.Path)
	case storage.BackendPostgres:
		store, err = storage.NewPostgresStorage(cfg.Database.DSN)
	case storage.BackendMySQL:
		store, err = storage.NewMySQLStorage(cfg.Database.DSN)
	default:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "The %s backend has no schema to migrate.\n", cfg.Database.Backend)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	slog.Debug("Starting database migration",
		"backend", cfg.Database.Backend,
		"status_only", status)

	if !status {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Backend:         %s\n", cfg.Database.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Current version: %d\n", current); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Latest version:  %d\n", storage.ExpectedSchemaVersion)
	return err
}
