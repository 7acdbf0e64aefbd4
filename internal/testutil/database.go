// Package testutil provides shared test helpers: migrated in-memory stores,
// a store that fails on demand, a manual clock and history fixtures.
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage storage.RecordStore
	t       *testing.T
}

// SetupTestDB creates a new in-memory SQLite store with migrations applied.
// Cleanup is registered on t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedRaw writes value under key as-is.
func (db *TestDB) SeedRaw(key string, value []byte) {
	db.t.Helper()
	if err := db.Storage.WriteRecord(context.Background(), key, value); err != nil {
		db.t.Fatalf("failed to seed %q: %v", key, err)
	}
}

// SeedHistory stores entries as the persisted history.
func (db *TestDB) SeedHistory(entries ...model.HistoryEntry) {
	db.t.Helper()
	db.seedJSON(storage.KeyHistory, entries)
}

// SeedStats stores s as the persisted stats record.
func (db *TestDB) SeedStats(s model.Stats) {
	db.t.Helper()
	db.seedJSON(storage.KeyStats, s)
}

// MustReadStats decodes the persisted stats record or fails the test.
func (db *TestDB) MustReadStats() model.Stats {
	db.t.Helper()
	var s model.Stats
	db.mustReadJSON(storage.KeyStats, &s)
	return s
}

// MustReadHistory decodes the persisted history or fails the test.
func (db *TestDB) MustReadHistory() []model.HistoryEntry {
	db.t.Helper()
	var entries []model.HistoryEntry
	db.mustReadJSON(storage.KeyHistory, &entries)
	return entries
}

// HasRecord reports whether key is present.
func (db *TestDB) HasRecord(key string) bool {
	db.t.Helper()
	_, err := db.Storage.ReadRecord(context.Background(), key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		db.t.Fatalf("failed to read %q: %v", key, err)
	}
	return true
}

func (db *TestDB) seedJSON(key string, v any) {
	db.t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		db.t.Fatalf("failed to encode %q: %v", key, err)
	}
	db.SeedRaw(key, data)
}

func (db *TestDB) mustReadJSON(key string, v any) {
	db.t.Helper()
	data, err := db.Storage.ReadRecord(context.Background(), key)
	if err != nil {
		db.t.Fatalf("failed to read %q: %v", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		db.t.Fatalf("failed to decode %q: %v", key, err)
	}
}

// ErrInjected is returned by FaultyStore operations that are set to fail.
var ErrInjected = errors.New("injected storage failure")

// FaultyStore wraps a RecordStore and fails selected operations.
type FaultyStore struct {
	storage.RecordStore
	Writes  int
	Deletes int
	mu      sync.Mutex

	FailReads   bool
	FailWrites  bool
	FailDeletes bool
}

// NewFaultyStore wraps an in-memory store.
func NewFaultyStore() *FaultyStore {
	return &FaultyStore{RecordStore: storage.NewMemoryStorage()}
}

// ReadRecord fails when FailReads is set.
func (f *FaultyStore) ReadRecord(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.FailReads
	f.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return f.RecordStore.ReadRecord(ctx, key)
}

// WriteRecord counts the call and fails when FailWrites is set.
func (f *FaultyStore) WriteRecord(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.Writes++
	fail := f.FailWrites
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.RecordStore.WriteRecord(ctx, key, value)
}

// DeleteRecord counts the call and fails when FailDeletes is set.
func (f *FaultyStore) DeleteRecord(ctx context.Context, key string) error {
	f.mu.Lock()
	f.Deletes++
	fail := f.FailDeletes
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.RecordStore.DeleteRecord(ctx, key)
}

// WriteCount returns the number of WriteRecord calls so far.
func (f *FaultyStore) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Writes
}
