// Package history keeps the bounded, newest-first log of past classifications.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 50

// Store persists the history list under storage.KeyHistory.
type Store struct {
	records storage.RecordStore
	logger  *slog.Logger
	limit   int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit overrides the retention cap. Non-positive values are ignored.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithLogger sets the logger used for persistence problems.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a history store on top of records.
func NewStore(records storage.RecordStore, opts ...Option) *Store {
	s := &Store{
		records: records,
		logger:  slog.Default(),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the retention cap.
func (s *Store) Limit() int {
	return s.limit
}

// Load returns the persisted history, newest first. A missing, unreadable or
// corrupt record yields an empty list.
func (s *Store) Load(ctx context.Context) []model.HistoryEntry {
	data, err := s.records.ReadRecord(ctx, storage.KeyHistory)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read history, starting empty", "error", err)
		}
		return []model.HistoryEntry{}
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Stored history is corrupt, starting empty", "error", err)
		return []model.HistoryEntry{}
	}
	if entries == nil {
		return []model.HistoryEntry{}
	}

	// A record written with a larger cap is trimmed on read.
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries
}

// Append prepends entry to current, truncates to the cap and persists the
// result. The new list is returned even when it could not be saved. current
// is left untouched.
func (s *Store) Append(ctx context.Context, entry model.HistoryEntry, current []model.HistoryEntry) []model.HistoryEntry {
	size := len(current) + 1
	if size > s.limit {
		size = s.limit
	}

	updated := make([]model.HistoryEntry, 0, size)
	updated = append(updated, entry)
	updated = append(updated, current[:size-1]...)

	if err := s.save(ctx, updated); err != nil {
		s.logger.Error("Failed to persist history", "error", err, "entries", len(updated))
	}
	return updated
}

// Clear removes the persisted history.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.records.DeleteRecord(ctx, storage.KeyHistory); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	s.logger.Info("Cleared history")
	return nil
}

func (s *Store) save(ctx context.Context, entries []model.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return s.records.WriteRecord(ctx, storage.KeyHistory, data)
}

// Find returns the entry with the given id.
func Find(entries []model.HistoryEntry, id string) (model.HistoryEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.HistoryEntry{}, false
}
