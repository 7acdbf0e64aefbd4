package engine

import (
	"context"

	"github.com/Veraticus/waste-wise/internal/model"
)

// RemoteClassifier sends an image to the remote model and returns its raw reply.
type RemoteClassifier interface {
	ClassifyImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// HistoryStore defines the contract for the persisted history log.
type HistoryStore interface {
	Load(ctx context.Context) []model.HistoryEntry
	Append(ctx context.Context, entry model.HistoryEntry, current []model.HistoryEntry) []model.HistoryEntry
	Clear(ctx context.Context) error
}

// StatsRecorder defines the contract for the running totals and streak.
type StatsRecorder interface {
	Current(ctx context.Context) model.Stats
	RecordClassification(ctx context.Context) model.Stats
}
