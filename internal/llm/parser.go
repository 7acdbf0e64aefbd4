package llm

import (
	"strings"

	"github.com/Veraticus/waste-wise/internal/model"
)

// ReplyOutcome says how a model reply was interpreted.
type ReplyOutcome int

// Reply outcomes.
const (
	OutcomeUnparseable ReplyOutcome = iota
	OutcomeParsed
	OutcomeRefusal
)

func (o ReplyOutcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeRefusal:
		return "refusal"
	default:
		return "unparseable"
	}
}

const refusalMarker = "unable to classify"

// Recognized labels, compared after trimming and lower-casing.
const (
	labelCategory    = "category"
	labelConfidence  = "confidence"
	labelDisposalTip = "disposal tip"
)

// ParseReply extracts a classification from a model reply.
//
// A reply containing "unable to classify" anywhere, in any case, is a
// refusal even if it also carries fields. Otherwise each line of the form
// "label: value" is split at its first colon; unknown labels and lines
// without a colon are ignored, and a repeated label keeps its last value.
// The reply parses only if category, confidence and disposal tip are all
// present and non-empty. Values are not checked against any vocabulary.
func ParseReply(raw string) (model.ClassificationResult, ReplyOutcome) {
	if strings.Contains(strings.ToLower(raw), refusalMarker) {
		return model.ClassificationResult{}, OutcomeRefusal
	}

	var result model.ClassificationResult
	for _, line := range strings.Split(raw, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(label)) {
		case labelCategory:
			result.Category = value
		case labelConfidence:
			result.Confidence = value
		case labelDisposalTip:
			result.DisposalTip = value
		}
	}

	if !result.IsComplete() {
		return model.ClassificationResult{}, OutcomeUnparseable
	}
	return result, OutcomeParsed
}
