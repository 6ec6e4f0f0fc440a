package service

import (
	"context"
	"fmt"
	"strings"

	"formforge/internal/ai"
	"formforge/internal/config"
	"formforge/internal/model"
)

// AnalyzerService produces per-response analysis. Analysis is auxiliary:
// any failure yields the neutral result rather than an error.
type AnalyzerService struct {
	invoker ai.Invoker
	models  config.GeminiModels
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(invoker ai.Invoker, models config.GeminiModels) *AnalyzerService {
	return &AnalyzerService{
		invoker: invoker,
		models:  models,
	}
}

// AnalyzeResponse classifies one submission against its form. Answers are
// rendered with their element labels so the model sees questions, not
// identifiers.
func (s *AnalyzerService) AnalyzeResponse(ctx context.Context, rec *model.ResponseRecord, form *model.FormDefinition) *model.AnalysisResult {
	fields := make([]ai.LabeledValue, 0, len(rec.Answers))
	for _, ans := range rec.Answers {
		if !ans.Filled() {
			continue
		}
		fields = append(fields, ai.LabeledValue{
			Label: form.LabelFor(ans.ElementID),
			Value: formatValue(ans.Value),
		})
	}
	if len(fields) == 0 {
		return neutralAnalysis()
	}

	prompt := ai.BuildAnalyzeResponsePrompt(form.Title, fields)
	raw, err := s.invoker.Invoke(ctx, s.models.Analyze, prompt)
	if err != nil {
		return neutralAnalysis()
	}

	result, err := ai.ParseAnalysis(raw)
	if err != nil {
		return neutralAnalysis()
	}
	return result
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
