package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

const recordsTable = "kv_records"

// SQLStorage implements RecordStore on top of database/sql.
type SQLStorage struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	dialect Dialect
	now     func() time.Time
}

var _ RecordStore = (*SQLStorage)(nil)

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		// Ensure directory exists
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(string(DialectSQLite), dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and an in-memory
	// database only lives as long as its single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return newSQLStorage(db, DialectSQLite)
}

// NewPostgresStorage connects to Postgres through the pgx stdlib driver.
func NewPostgresStorage(dsn string) (*SQLStorage, error) {
	return openNetworkSQL(DialectPostgres, dsn)
}

// NewMySQLStorage connects to MySQL.
func NewMySQLStorage(dsn string) (*SQLStorage, error) {
	return openNetworkSQL(DialectMySQL, dsn)
}

func openNetworkSQL(dialect Dialect, dsn string) (*SQLStorage, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	return newSQLStorage(db, dialect)
}

// NewSQLStorage wraps an existing connection.
func NewSQLStorage(db *sql.DB, dialect Dialect) (*SQLStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db", ErrNilValue)
	}
	return newSQLStorage(db, dialect)
}

func newSQLStorage(db *sql.DB, dialect Dialect) (*SQLStorage, error) {
	if err := dialect.validate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLStorage{
		db:      db,
		dialect: dialect,
		builder: dialect.builder(),
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Dialect reports which SQL flavour the storage speaks.
func (s *SQLStorage) Dialect() Dialect {
	return s.dialect
}

// Close closes the database connection.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// ReadRecord returns the stored value for key.
func (s *SQLStorage) ReadRecord(ctx context.Context, key string) ([]byte, error) {
	if err := validateKeyAccess(ctx, key); err != nil {
		return nil, err
	}

	query, args, err := s.builder.
		Select("value").
		From(recordsTable).
		Where(sq.Eq{"record_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build read query: %w", err)
	}

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read record %q: %w", key, err)
	}

	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// WriteRecord inserts or replaces the value for key.
func (s *SQLStorage) WriteRecord(ctx context.Context, key string, value []byte) error {
	if err := validateWrite(ctx, key, value); err != nil {
		return err
	}

	now := s.now()
	query, args, err := s.builder.
		Insert(recordsTable).
		Columns("record_key", "value", "updated_at", "created_at").
		Values(key, value, now, now).
		Suffix(s.dialect.upsertSuffix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build write query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	return nil
}

// DeleteRecord removes the value for key.
func (s *SQLStorage) DeleteRecord(ctx context.Context, key string) error {
	if err := validateKeyAccess(ctx, key); err != nil {
		return err
	}

	query, args, err := s.builder.
		Delete(recordsTable).
		Where(sq.Eq{"record_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}
