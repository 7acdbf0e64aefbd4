package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/history"
	"github.com/Veraticus/waste-wise/internal/model"
)

// Session holds the history and stats for one run of the application and
// allows a single classification in flight at a time.
type Session struct {
	engine  *Engine
	history []model.HistoryEntry
	stats   model.Stats
	mu      sync.RWMutex
	pending atomic.Bool
}

// NewSession loads the persisted history and current stats.
func NewSession(ctx context.Context, engine *Engine) *Session {
	return &Session{
		engine:  engine,
		history: engine.history.Load(ctx),
		stats:   engine.stats.Current(ctx),
	}
}

// Submit classifies img. A second submission while one is running fails
// with common.ErrClassificationPending.
func (s *Session) Submit(ctx context.Context, img *model.Image) (Outcome, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return Outcome{}, common.NewUserError(common.MsgClassificationBusy, common.ErrClassificationPending)
	}
	defer s.pending.Store(false)

	outcome, err := s.engine.Classify(ctx, img, s.History())
	if err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	s.history = outcome.History
	s.stats = outcome.Stats
	s.mu.Unlock()

	return outcome, nil
}

// Pending reports whether a classification is in flight.
func (s *Session) Pending() bool {
	return s.pending.Load()
}

// History returns a copy of the current history, newest first.
func (s *Session) History() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.HistoryEntry(nil), s.history...)
}

// Stats returns the stats as of the last load or classification.
func (s *Session) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Restore looks up a past entry for display.
func (s *Session) Restore(id string) (model.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return history.Find(s.history, id)
}

// ClearHistory deletes the persisted history. Stats are kept.
func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.engine.history.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.history = []model.HistoryEntry{}
	s.mu.Unlock()
	return nil
}
