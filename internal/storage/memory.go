package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps records in process memory. Nothing survives Close.
type MemoryStorage struct {
	records map[string][]byte
	mu      sync.RWMutex
}

var _ RecordStore = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string][]byte)}
}

// ReadRecord returns a copy of the stored value.
func (m *MemoryStorage) ReadRecord(ctx context.Context, key string) ([]byte, error) {
	if err := validateKeyAccess(ctx, key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte{}, value...), nil
}

// WriteRecord stores a copy of value.
func (m *MemoryStorage) WriteRecord(ctx context.Context, key string, value []byte) error {
	if err := validateWrite(ctx, key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = append([]byte{}, value...)
	return nil
}

// DeleteRecord removes key if present.
func (m *MemoryStorage) DeleteRecord(ctx context.Context, key string) error {
	if err := validateKeyAccess(ctx, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

// Close drops every record.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[string][]byte)
	return nil
}
