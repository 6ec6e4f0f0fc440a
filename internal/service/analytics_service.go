package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"formforge/internal/cache"
	"formforge/internal/model"
	"formforge/internal/repository"
)

const (
	minResponsesForOptimization = 10
	lowFillRateThreshold        = 0.5
	trailingWindowDays          = 30
)

// AnalyticsService computes deterministic aggregates over stored responses:
// fill rates, completion rate, submission volume, device breakdown, and the
// rule-based optimization and validation suggestions built on them.
type AnalyticsService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	insightCache cache.InsightCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo, insightCache cache.InsightCache) *AnalyticsService {
	return &AnalyticsService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
		insightCache: insightCache,
	}
}

// FieldFillStats counts, per element, how many responses supplied a usable
// value. Every non-layout element of the form appears in the result, so
// never-answered elements show up with zero fills.
func (s *AnalyticsService) FieldFillStats(form *model.FormDefinition, responses []*model.ResponseRecord) map[string]model.FieldStats {
	stats := make(map[string]model.FieldStats)
	for _, el := range form.Elements {
		if el.Type.IsLayout() {
			continue
		}
		stats[el.ID] = model.FieldStats{}
	}

	for _, rec := range responses {
		answered := make(map[string]bool, len(rec.Answers))
		for _, ans := range rec.Answers {
			if ans.Filled() {
				answered[ans.ElementID] = true
			}
		}
		for id, st := range stats {
			st.Total++
			if answered[id] {
				st.Filled++
			}
			stats[id] = st
		}
	}
	return stats
}

// CompletionRate is the share of responses with status complete. An empty
// set yields 0, not NaN.
func (s *AnalyticsService) CompletionRate(responses []*model.ResponseRecord) float64 {
	if len(responses) == 0 {
		return 0
	}
	complete := 0
	for _, rec := range responses {
		if rec.Status == model.StatusComplete {
			complete++
		}
	}
	return float64(complete) / float64(len(responses))
}

// ResponsesPerDay buckets submissions from the trailing 30 days by UTC
// calendar day. Days with no submissions are omitted; buckets are sorted
// ascending by date.
func (s *AnalyticsService) ResponsesPerDay(responses []*model.ResponseRecord, now time.Time) []model.DayCount {
	cutoff := now.UTC().AddDate(0, 0, -trailingWindowDays)

	counts := make(map[string]int)
	for _, rec := range responses {
		t := rec.SubmittedAt.UTC()
		if t.Before(cutoff) {
			continue
		}
		counts[t.Format("2006-01-02")]++
	}

	days := make([]model.DayCount, 0, len(counts))
	for date, count := range counts {
		days = append(days, model.DayCount{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// AverageTimeSpent averages TimeSpentSec over the responses that report a
// positive value. 0 when none do.
func (s *AnalyticsService) AverageTimeSpent(responses []*model.ResponseRecord) float64 {
	var sum float64
	var n int
	for _, rec := range responses {
		if rec.Meta.TimeSpentSec > 0 {
			sum += rec.Meta.TimeSpentSec
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// DeviceBreakdown counts submissions per reported device, descending by
// count with ties broken alphabetically. Responses without a device are
// skipped.
func (s *AnalyticsService) DeviceBreakdown(responses []*model.ResponseRecord) []model.DeviceCount {
	counts := make(map[string]int)
	for _, rec := range responses {
		if rec.Meta.Device != "" {
			counts[rec.Meta.Device]++
		}
	}

	devices := make([]model.DeviceCount, 0, len(counts))
	for device, count := range counts {
		devices = append(devices, model.DeviceCount{Device: device, Count: count})
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Count != devices[j].Count {
			return devices[i].Count > devices[j].Count
		}
		return devices[i].Device < devices[j].Device
	})
	return devices
}

// Summarize condenses a form and its responses for insight synthesis.
func (s *AnalyticsService) Summarize(form *model.FormDefinition, responses []*model.ResponseRecord) model.FormSummary {
	typeSet := make(map[string]bool)
	types := make([]string, 0)
	inputCount := 0
	for _, el := range form.Elements {
		if el.Type.IsLayout() {
			continue
		}
		inputCount++
		if !typeSet[string(el.Type)] {
			typeSet[string(el.Type)] = true
			types = append(types, string(el.Type))
		}
	}

	return model.FormSummary{
		Title:          form.Title,
		ElementCount:   inputCount,
		ElementTypes:   types,
		ResponseCount:  len(responses),
		CompletionRate: s.CompletionRate(responses),
		AvgTimeSec:     s.AverageTimeSpent(responses),
	}
}

// OptimizeForm flags low-engagement elements. Fewer than 10 responses
// short-circuits to the fixed insufficient-data result together with
// ErrInsufficientData; repository failures wrap into
// *OptimizationFailedError.
func (s *AnalyticsService) OptimizeForm(ctx context.Context, formID string) (*model.OptimizationResult, error) {
	if s.insightCache != nil {
		if cached, err := s.insightCache.GetOptimization(ctx, formID); err == nil && cached != nil {
			return cached, nil
		}
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, &OptimizationFailedError{Err: err}
	}
	if form == nil {
		return nil, &OptimizationFailedError{Err: errors.New("form not found: " + formID)}
	}

	responses, err := s.responseRepo.ListByFormID(ctx, repository.ResponseQuery{FormID: formID})
	if err != nil {
		return nil, &OptimizationFailedError{Err: err}
	}
	if len(responses) < minResponsesForOptimization {
		return insufficientDataResult(), ErrInsufficientData
	}

	stats := s.FieldFillStats(form, responses)
	suggestions := []string{}
	for _, el := range form.Elements {
		if el.Type.IsLayout() {
			continue
		}
		st := stats[el.ID]
		if st.FillRate() < lowFillRateThreshold {
			suggestions = append(suggestions, fmt.Sprintf(
				"%q is filled in only %.0f%% of responses; consider making it optional, clarifying its label, or removing it",
				el.Label, st.FillRate()*100))
		}
	}

	message := fmt.Sprintf("Analyzed %d responses; %d of %d fields need attention",
		len(responses), len(suggestions), len(stats))
	if len(suggestions) == 0 {
		message = fmt.Sprintf("Analyzed %d responses; all fields are performing well", len(responses))
	}

	result := &model.OptimizationResult{
		Message:     message,
		Suggestions: suggestions,
		FieldStats:  stats,
	}
	if s.insightCache != nil {
		// Cache is advisory, a write failure costs a recompute later
		_ = s.insightCache.SetOptimization(ctx, formID, result)
	}
	return result, nil
}

// SuggestValidations proposes validation rules per element from a fixed rule
// table. It never errors; elements with nothing to suggest are omitted.
func (s *AnalyticsService) SuggestValidations(form *model.FormDefinition) []model.ValidationSuggestion {
	out := []model.ValidationSuggestion{}
	for _, el := range form.Elements {
		var suggestions []string
		label := strings.ToLower(el.Label)

		switch el.Type {
		case model.ElementEmail:
			suggestions = append(suggestions, "Enforce email address format")
		case model.ElementText:
			if strings.Contains(label, "name") {
				suggestions = append(suggestions, "Require a minimum length of 2 characters")
			}
			if strings.Contains(label, "phone") {
				suggestions = append(suggestions, "Validate against a phone number pattern")
			}
		case model.ElementTextarea:
			suggestions = append(suggestions, "Set a character limit to keep answers focused")
		case model.ElementNumber:
			suggestions = append(suggestions, "Set minimum and maximum value bounds")
		}

		if len(suggestions) == 0 {
			continue
		}
		out = append(out, model.ValidationSuggestion{
			ElementID:   el.ID,
			Label:       el.Label,
			Type:        el.Type,
			Suggestions: suggestions,
		})
	}
	return out
}
