// Package model defines the core domain models used throughout the application.
package model

import "time"

// ClassificationResult is the category/confidence/disposal-tip triple parsed
// from a single model reply. Values are passed through exactly as the model
// wrote them; none of them is checked against a fixed vocabulary.
type ClassificationResult struct {
	Category    string `json:"category" yaml:"category"`
	Confidence  string `json:"confidence" yaml:"confidence"`
	DisposalTip string `json:"disposalTip" yaml:"disposal_tip"`
}

// IsComplete reports whether all three fields carry a value.
func (r ClassificationResult) IsComplete() bool {
	return r.Category != "" && r.Confidence != "" && r.DisposalTip != ""
}

// HistoryEntry is a classification result recorded in the history log.
// Entries are never mutated after insertion.
type HistoryEntry struct {
	ClassificationResult `yaml:",inline"`
	ID                   string `json:"id" yaml:"id"`
	ImagePreview         string `json:"imagePreview" yaml:"image_preview"`
	Timestamp            int64  `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
}

// ClassifiedAt returns the entry timestamp as a time in loc.
func (e HistoryEntry) ClassifiedAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(e.Timestamp).In(loc)
}

// Result returns the classification fields of the entry.
func (e HistoryEntry) Result() ClassificationResult {
	return e.ClassificationResult
}
