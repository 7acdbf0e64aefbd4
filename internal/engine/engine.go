// Package engine implements the classification flow: validate the input,
// ask the remote model, interpret its reply and record a success in history
// and stats.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/llm"
	"github.com/Veraticus/waste-wise/internal/model"
)

// Engine orchestrates one classification at a time.
type Engine struct {
	classifier RemoteClassifier
	history    HistoryStore
	stats      StatsRecorder
	clock      common.Clock
	newID      func() string
	logger     *slog.Logger
}

// Outcome is the result of a successful classification.
type Outcome struct {
	Result  model.ClassificationResult
	Entry   model.HistoryEntry
	History []model.HistoryEntry
	Stats   model.Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock used for entry timestamps.
func WithClock(clock common.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDGenerator replaces the UUID generator used for entry ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates a new classification engine with the given dependencies.
func New(classifier RemoteClassifier, history HistoryStore, stats StatsRecorder, opts ...Option) *Engine {
	e := &Engine{
		classifier: classifier,
		history:    history,
		stats:      stats,
		clock:      common.SystemClock{},
		newID:      func() string { return uuid.New().String() },
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify runs one classification of img. current is the history as the
// caller knows it; on success the returned Outcome carries the new history
// and stats. Every failure is a *common.UserError wrapping one of the
// classification sentinels, and leaves history and stats untouched.
func (e *Engine) Classify(ctx context.Context, img *model.Image, current []model.HistoryEntry) (Outcome, error) {
	if img.IsEmpty() {
		return Outcome{}, common.NewUserError(common.MsgNoInputSelected, common.ErrNoInputSelected)
	}

	e.logger.Debug("Classifying image", "name", img.Name, "mime_type", img.MIMEType, "bytes", len(img.Data))

	reply, err := e.classifier.ClassifyImage(ctx, img.Data, img.MIMEType)
	if err != nil {
		common.LogError(e.logger, err, "Remote classification failed", common.Fields{"name": img.Name})
		return Outcome{}, common.NewUserError(common.MsgRemoteCallFailed,
			fmt.Errorf("%w: %w", common.ErrRemoteCallFailed, err))
	}

	result, outcome := llm.ParseReply(reply)
	switch outcome {
	case llm.OutcomeRefusal:
		e.logger.Info("Model declined to classify image", "name", img.Name)
		return Outcome{}, common.NewUserError(common.MsgExplicitRefusal, common.ErrExplicitRefusal)
	case llm.OutcomeUnparseable:
		e.logger.Warn("Model reply did not match the expected format", "name", img.Name, "reply_length", len(reply))
		return Outcome{}, common.NewUserError(common.MsgUnparseableResponse, common.ErrUnparseableResponse)
	}

	entry := model.HistoryEntry{
		ClassificationResult: result,
		ID:                   e.newID(),
		Timestamp:            e.clock.Now().UnixMilli(),
		ImagePreview:         img.DataURL(),
	}

	history := e.history.Append(ctx, entry, current)
	stats := e.stats.RecordClassification(ctx)

	e.logger.Info("Classification recorded",
		"id", entry.ID,
		"category", result.Category,
		"confidence", result.Confidence,
		"total", stats.Total,
		"streak", stats.Streak)

	return Outcome{
		Result:  result,
		Entry:   entry,
		History: history,
		Stats:   stats,
	}, nil
}
