// Package preferences persists user display preferences.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// Store reads and writes the theme preference.
type Store struct {
	records storage.RecordStore
	logger  *slog.Logger
}

// NewStore creates a preference store. A nil logger uses slog.Default.
func NewStore(records storage.RecordStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{records: records, logger: logger}
}

// Theme returns the stored theme, or model.DefaultTheme when none is stored
// or the stored value is not recognized.
func (s *Store) Theme(ctx context.Context) model.Theme {
	data, err := s.records.ReadRecord(ctx, storage.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read theme preference", "error", err)
		}
		return model.DefaultTheme
	}

	theme, err := model.ParseTheme(string(data))
	if err != nil {
		s.logger.Warn("Ignoring stored theme", "error", err)
		return model.DefaultTheme
	}
	return theme
}

// SetTheme stores theme. The value is saved as the bare name.
func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	if _, err := model.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.records.WriteRecord(ctx, storage.KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new one.
func (s *Store) ToggleTheme(ctx context.Context) (model.Theme, error) {
	next := s.Theme(ctx).Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
