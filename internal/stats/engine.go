// Package stats maintains the running classification total and the daily
// streak.
//
// A streak counts consecutive calendar days with at least one
// classification. Days are civil dates in the configured location, so the
// streak follows the user's wall calendar across DST changes.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// Engine reads and updates the persisted stats record.
type Engine struct {
	records storage.RecordStore
	clock   common.Clock
	loc     *time.Location
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(clock common.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLocation sets the zone in which calendar days are observed.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithLogger sets the logger used for persistence problems.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a stats engine backed by records.
func NewEngine(records storage.RecordStore, opts ...Option) *Engine {
	e := &Engine{
		records: records,
		clock:   common.SystemClock{},
		loc:     time.Local,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the zone used for day boundaries.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Current returns the stats as of now. A streak whose last classification is
// older than yesterday is reset to zero and the reset is saved right away.
func (e *Engine) Current(ctx context.Context) model.Stats {
	s := e.load(ctx)
	if !s.HasClassified() || s.Streak == 0 {
		return s
	}

	now := e.clock.Now()
	last := s.LastClassifiedAt(e.loc)
	if SameDay(last, now, e.loc) || IsYesterday(last, now, e.loc) {
		return s
	}

	e.logger.Debug("Streak lapsed",
		"last_day", DayOf(last, e.loc).String(),
		"today", DayOf(now, e.loc).String(),
		"streak", s.Streak)

	s.Streak = 0
	if err := e.save(ctx, s); err != nil {
		e.logger.Error("Failed to persist streak reset", "error", err)
	}
	return s
}

// RecordClassification counts one successful classification made now and
// returns the updated stats.
func (e *Engine) RecordClassification(ctx context.Context) model.Stats {
	s := e.Current(ctx)
	now := e.clock.Now()

	switch {
	case !s.HasClassified():
		s.Streak = 1
	case SameDay(s.LastClassifiedAt(e.loc), now, e.loc):
		// Already counted today.
	case IsYesterday(s.LastClassifiedAt(e.loc), now, e.loc):
		s.Streak++
	default:
		s.Streak = 1
	}

	// Unlike a plain same-day check, a stored zero streak with a same-day
	// last classification is raised to 1. That state only comes from an
	// external edit of the record, and a classification made today always
	// counts toward the streak.
	if s.Streak == 0 {
		s.Streak = 1
	}

	s.Total++
	s.LastClassification = now.UnixMilli()

	if err := e.save(ctx, s); err != nil {
		e.logger.Error("Failed to persist stats", "error", err, "total", s.Total)
	}
	return s
}

// Reset deletes the stats record.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.records.DeleteRecord(ctx, storage.KeyStats); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	e.logger.Info("Reset stats")
	return nil
}

func (e *Engine) load(ctx context.Context) model.Stats {
	data, err := e.records.ReadRecord(ctx, storage.KeyStats)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("Failed to read stats, starting from zero", "error", err)
		}
		return model.Stats{}
	}

	var s model.Stats
	if err := json.Unmarshal(data, &s); err != nil {
		e.logger.Warn("Stored stats are corrupt, starting from zero", "error", err)
		return model.Stats{}
	}
	if s.Streak < 0 || s.Total < 0 || s.LastClassification < 0 {
		e.logger.Warn("Stored stats are out of range, starting from zero",
			"total", s.Total, "streak", s.Streak)
		return model.Stats{}
	}
	return s
}

func (e *Engine) save(ctx context.Context, s model.Stats) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	return e.records.WriteRecord(ctx, storage.KeyStats, data)
}
