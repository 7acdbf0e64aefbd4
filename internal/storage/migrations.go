package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

const migrationsTable = "schema_migrations"

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx, Dialect) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Create key-value records table",
		Up: func(tx *sql.Tx, d Dialect) error {
			keyType, blobType, tsType := d.columnTypes()
			_, err := tx.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				record_key %s PRIMARY KEY,
				value %s NOT NULL,
				updated_at %s NOT NULL
			)`, recordsTable, keyType, blobType, tsType))
			return err
		},
	},
	{
		Version:     2,
		Description: "Track when each record was first written",
		Up: func(tx *sql.Tx, d Dialect) error {
			_, _, tsType := d.columnTypes()
			_, err := tx.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN created_at %s NULL`, recordsTable, tsType))
			return err
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion. Each migration runs
// in its own transaction and is recorded in schema_migrations.
func (s *SQLStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if err := s.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx, s.dialect); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		query, args, buildErr := s.builder.
			Insert(migrationsTable).
			Columns("version", "description", "applied_at").
			Values(migration.Version, migration.Description, s.now()).
			ToSql()
		if buildErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to build schema version update: %w", buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description,
			"dialect", s.dialect)
	}

	// Verify we're at the expected schema version
	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the highest applied migration, 0 for a fresh database.
func (s *SQLStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := s.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}

	query, args, err := s.builder.
		Select("COALESCE(MAX(version), 0)").
		From(migrationsTable).
		ToSql()
	if err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *SQLStorage) ensureMigrationsTable(ctx context.Context) error {
	_, _, tsType := s.dialect.columnTypes()
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version INTEGER PRIMARY KEY,
		description VARCHAR(255) NOT NULL,
		applied_at %s NOT NULL
	)`, migrationsTable, tsType))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}
	return nil
}
