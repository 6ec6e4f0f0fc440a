package service

import "formforge/internal/model"

// Fixed safe defaults for the operations that degrade instead of failing.
// Generation and optimization have no safe default and propagate errors.

func neutralAnalysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		Sentiment: model.SentimentNeutral,
		Keywords:  []string{},
		Summary:   "Analysis unavailable",
		Flags:     []string{},
	}
}

func fallbackInsights() *model.InsightResult {
	return &model.InsightResult{
		OverallTrends:          "Unable to generate insights at this time",
		Recommendations:        []string{},
		Patterns:               []string{},
		ImprovementSuggestions: []string{},
	}
}

func insufficientDataResult() *model.OptimizationResult {
	return &model.OptimizationResult{
		Message:     "Not enough responses to optimize this form yet",
		Suggestions: []string{},
		FieldStats:  map[string]model.FieldStats{},
	}
}
