package model

import (
	"strings"
	"time"
)

// ResponseStatus describes how a submission completed.
type ResponseStatus string

const (
	StatusComplete ResponseStatus = "complete"
	StatusPartial  ResponseStatus = "partial"
	StatusInvalid  ResponseStatus = "invalid"
)

// Sentiment classifies the overall tone of a submission.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is a known sentiment value.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Answer pairs an element identifier with the submitted value. Values arrive
// as decoded JSON, so strings, numbers, bools, arrays and objects all occur.
type Answer struct {
	ElementID string `json:"elementId" bson:"elementId"`
	Value     any    `json:"value" bson:"value"`
}

// Filled reports whether the answer carries a usable value. Whitespace-only
// strings, empty arrays and empty objects count as unfilled; any number or
// bool counts as filled.
func (a Answer) Filled() bool {
	switch v := a.Value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// ResponseMeta carries client-side context recorded with a submission.
type ResponseMeta struct {
	Device        string  `json:"device,omitempty" bson:"device,omitempty"`
	Browser       string  `json:"browser,omitempty" bson:"browser,omitempty"`
	TimeSpentSec  float64 `json:"timeSpentSec,omitempty" bson:"timeSpentSec,omitempty"`
	CompletionPct float64 `json:"completionPct,omitempty" bson:"completionPct,omitempty"`
}

// AnalysisResult is the per-submission AI analysis. It is attached to a
// response at most once; absence is a valid state.
type AnalysisResult struct {
	Sentiment Sentiment `json:"sentiment" bson:"sentiment"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	Summary   string    `json:"summary" bson:"summary"`
	Flags     []string  `json:"flags" bson:"flags"`
}

// ResponseRecord is one stored submission against a form.
type ResponseRecord struct {
	ID          string          `json:"id,omitempty" bson:"_id,omitempty"`
	FormID      string          `json:"formId" bson:"formId"`
	Answers     []Answer        `json:"answers" bson:"answers"`
	Meta        ResponseMeta    `json:"meta" bson:"meta"`
	Status      ResponseStatus  `json:"status" bson:"status"`
	Analysis    *AnalysisResult `json:"analysis,omitempty" bson:"analysis,omitempty"`
	SubmittedAt time.Time       `json:"submittedAt" bson:"submittedAt"`
}
