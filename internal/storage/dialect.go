package storage

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect identifies the SQL flavour behind a database/sql connection.
type Dialect string

// Supported dialects. The values are the database/sql driver names.
const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
	DialectMySQL    Dialect = "mysql"
)

// builder returns a statement builder with the dialect's placeholder style.
func (d Dialect) builder() sq.StatementBuilderType {
	if d == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// upsertSuffix turns an INSERT into kv_records into a replace-on-conflict write.
func (d Dialect) upsertSuffix() string {
	if d == DialectMySQL {
		return "ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)"
	}
	return "ON CONFLICT (record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
}

// columnTypes returns the key, blob and timestamp column types.
func (d Dialect) columnTypes() (key, blob, timestamp string) {
	switch d {
	case DialectPostgres:
		return "TEXT", "BYTEA", "TIMESTAMPTZ"
	case DialectMySQL:
		return "VARCHAR(191)", "LONGBLOB", "DATETIME(3)"
	default:
		return "TEXT", "BLOB", "DATETIME"
	}
}

func (d Dialect) validate() error {
	switch d {
	case DialectSQLite, DialectPostgres, DialectMySQL:
		return nil
	default:
		return fmt.Errorf("unsupported SQL dialect: %s", d)
	}
}
