package service

import (
	"context"

	"formforge/internal/ai"
	"formforge/internal/cache"
	"formforge/internal/config"
	"formforge/internal/model"
	"formforge/internal/repository"
)

// insightSampleLimit caps how many responses feed one synthesis run.
const insightSampleLimit = 200

// InsightService synthesizes aggregate insights for a form. Any failure in
// the pipeline degrades to the fixed fallback result; the caller always gets
// an InsightResult.
type InsightService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	analytics    *AnalyticsService
	invoker      ai.Invoker
	models       config.GeminiModels
	insightCache cache.InsightCache
}

// NewInsightService creates a new insight service
func NewInsightService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, analytics *AnalyticsService, invoker ai.Invoker, models config.GeminiModels, insightCache cache.InsightCache) *InsightService {
	return &InsightService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		analytics:    analytics,
		invoker:      invoker,
		models:       models,
		insightCache: insightCache,
	}
}

// GenerateInsights aggregates a form's responses and asks the model for
// trends, patterns and recommendations. Results are cached; cache errors are
// treated as misses.
func (s *InsightService) GenerateInsights(ctx context.Context, formID string) *model.InsightResult {
	if s.insightCache != nil {
		if cached, err := s.insightCache.GetInsights(ctx, formID); err == nil && cached != nil {
			return cached
		}
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil || form == nil {
		return fallbackInsights()
	}

	responses, err := s.responseRepo.ListByFormID(ctx, repository.ResponseQuery{
		FormID: formID,
		Limit:  insightSampleLimit,
	})
	if err != nil {
		return fallbackInsights()
	}

	summary := s.analytics.Summarize(form, responses)
	prompt := ai.BuildInsightsPrompt(summary)

	raw, err := s.invoker.Invoke(ctx, s.models.Insight, prompt)
	if err != nil {
		return fallbackInsights()
	}

	result, err := ai.ParseInsight(raw)
	if err != nil {
		return fallbackInsights()
	}

	if s.insightCache != nil {
		_ = s.insightCache.SetInsights(ctx, formID, result)
	}
	return result
}
