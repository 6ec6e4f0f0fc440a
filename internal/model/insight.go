package model

// InsightResult is the aggregate AI synthesis over a form's responses.
type InsightResult struct {
	OverallTrends          string   `json:"overallTrends" bson:"overallTrends"`
	Recommendations        []string `json:"recommendations" bson:"recommendations"`
	Patterns               []string `json:"patterns" bson:"patterns"`
	ImprovementSuggestions []string `json:"improvementSuggestions" bson:"improvementSuggestions"`
}

// FieldStats counts how often an element received a usable value.
type FieldStats struct {
	Total  int `json:"total" bson:"total"`
	Filled int `json:"filled" bson:"filled"`
}

// FillRate is Filled/Total, or 0 when the element was never presented.
func (s FieldStats) FillRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Filled) / float64(s.Total)
}

// OptimizationResult reports low-engagement elements with per-field evidence.
type OptimizationResult struct {
	Message     string                `json:"message"`
	Suggestions []string              `json:"suggestions"`
	FieldStats  map[string]FieldStats `json:"fieldStats"`
}

// ValidationSuggestion proposes validation rules for one element.
type ValidationSuggestion struct {
	ElementID   string      `json:"elementId"`
	Label       string      `json:"label"`
	Type        ElementType `json:"type"`
	Suggestions []string    `json:"suggestions"`
}

// DayCount is one calendar-day bucket of submission volume.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// DeviceCount is one device's share of submissions.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// FormSummary condenses a form and its responses for insight prompts.
type FormSummary struct {
	Title          string   `json:"title"`
	ElementCount   int      `json:"elementCount"`
	ElementTypes   []string `json:"elementTypes"`
	ResponseCount  int      `json:"responseCount"`
	CompletionRate float64  `json:"completionRate"`
	AvgTimeSec     float64  `json:"avgTimeSec"`
}
