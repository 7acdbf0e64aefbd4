package testutil

import (
	"fmt"
	"time"

	"github.com/Veraticus/waste-wise/internal/model"
)

// SamplePreview is a tiny valid data URI used as an image snapshot.
const SamplePreview = "data:image/png;base64,iVBORw0KGgo="

// EntryBuilder builds history entries with sensible defaults.
type EntryBuilder struct {
	entry model.HistoryEntry
}

// NewEntry starts an entry with the given id.
func NewEntry(id string) *EntryBuilder {
	return &EntryBuilder{entry: model.HistoryEntry{
		ID: id,
		ClassificationResult: model.ClassificationResult{
			Category:    "Plastic",
			Confidence:  "90%",
			DisposalTip: "Rinse and place in the recycling bin.",
		},
		ImagePreview: SamplePreview,
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}}
}

// WithCategory sets the category.
func (b *EntryBuilder) WithCategory(category string) *EntryBuilder {
	b.entry.Category = category
	return b
}

// WithConfidence sets the confidence.
func (b *EntryBuilder) WithConfidence(confidence string) *EntryBuilder {
	b.entry.Confidence = confidence
	return b
}

// At sets the timestamp.
func (b *EntryBuilder) At(t time.Time) *EntryBuilder {
	b.entry.Timestamp = t.UnixMilli()
	return b
}

// Build returns the entry.
func (b *EntryBuilder) Build() model.HistoryEntry {
	return b.entry
}

// Entries returns n entries, newest first, with ids "entry-0" .. "entry-(n-1)".
func Entries(n int) []model.HistoryEntry {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]model.HistoryEntry, n)
	for i := range entries {
		entries[i] = NewEntry(fmt.Sprintf("entry-%d", i)).
			At(base.Add(-time.Duration(i) * time.Minute)).
			Build()
	}
	return entries
}
