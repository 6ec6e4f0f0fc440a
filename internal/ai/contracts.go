package ai

// Contract names the top-level keys a model response must carry. The parser
// checks presence before decoding, so a missing key is reported by name
// instead of surfacing as a zero value.
type Contract struct {
	Name     string
	Required []string
}

var (
	// FormContract covers form generation output.
	FormContract = Contract{
		Name:     "form",
		Required: []string{"title", "description", "elements", "settings"},
	}

	// AnalysisContract covers per-response analysis output.
	AnalysisContract = Contract{
		Name:     "analysis",
		Required: []string{"sentiment", "keywords", "summary", "flags"},
	}

	// InsightContract covers aggregate insight output.
	InsightContract = Contract{
		Name:     "insight",
		Required: []string{"overallTrends", "recommendations", "patterns", "improvementSuggestions"},
	}
)
