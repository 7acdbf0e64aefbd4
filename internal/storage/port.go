// Package storage provides the data persistence layer for the application.
//
// All state is kept as opaque records addressed by key. The history list,
// the stats record and the display preference each own one key; the
// packages that own them decide how the bytes are encoded.
package storage

import (
	"context"
	"errors"
)

// Record keys used by the application.
const (
	KeyHistory = "waste-classifier-history"
	KeyStats   = "waste-classifier-stats"
	KeyTheme   = "theme"
)

// ErrNotFound is returned by ReadRecord when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// RecordStore is a minimal key-value port. Exactly one writer is assumed;
// WriteRecord replaces the previous value atomically.
type RecordStore interface {
	ReadRecord(ctx context.Context, key string) ([]byte, error)
	WriteRecord(ctx context.Context, key string, value []byte) error
	// DeleteRecord removes a record. Deleting a missing key is not an error.
	DeleteRecord(ctx context.Context, key string) error
	Close() error
}
