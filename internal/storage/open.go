package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMinio    = "minio"
	BackendMemory   = "memory"
)

// Options selects and configures a storage backend.
type Options struct {
	Backend string
	Path    string
	DSN     string
	Minio   MinioOptions
}

// Open returns a ready-to-use RecordStore. SQL backends are migrated before
// they are returned.
func Open(ctx context.Context, opts Options) (RecordStore, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == "" {
		backend = BackendSQLite
	}

	var (
		sqlStore *SQLStorage
		err      error
	)
	switch backend {
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendMinio:
		return NewObjectStorage(ctx, opts.Minio)
	case BackendSQLite:
		sqlStore, err = NewSQLiteStorage(opts.Path)
	case BackendPostgres:
		sqlStore, err = NewPostgresStorage(opts.DSN)
	case BackendMySQL:
		sqlStore, err = NewMySQLStorage(opts.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
	if err != nil {
		return nil, err
	}

	if err := sqlStore.Migrate(ctx); err != nil {
		_ = sqlStore.Close()
		return nil, fmt.Errorf("failed to migrate %s storage: %w", backend, err)
	}

	slog.Debug("Opened storage", "backend", backend)
	return sqlStore, nil
}
