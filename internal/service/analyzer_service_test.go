package service

import (
	"context"
	"strings"
	"testing"

	"formforge/internal/model"
)

const analysisJSON = `{"sentiment": "positive", "keywords": ["quick", "helpful"], "summary": "A happy customer", "flags": []}`

func analyzerFixtures() (*model.ResponseRecord, *model.FormDefinition) {
	form := testForm()
	rec := &model.ResponseRecord{
		ID:     "resp_1",
		FormID: form.ID,
		Answers: []model.Answer{
			{ElementID: "el_name", Value: "Ada"},
			{ElementID: "el_notes", Value: "Quick and helpful service"},
			{ElementID: "el_email", Value: ""}, // unfilled, excluded from prompt
		},
	}
	return rec, form
}

func TestAnalyzeResponse(t *testing.T) {
	rec, form := analyzerFixtures()
	invoker := &fakeInvoker{output: analysisJSON}
	svc := NewAnalyzerService(invoker, testModels)

	result := svc.AnalyzeResponse(context.Background(), rec, form)
	if result.Sentiment != model.SentimentPositive {
		t.Errorf("sentiment = %q", result.Sentiment)
	}

	prompt := invoker.prompts[0]
	if !strings.Contains(prompt, "Full Name: Ada") {
		t.Error("answers should appear with element labels")
	}
	if strings.Contains(prompt, "Email Address") {
		t.Error("unfilled answers should not appear in the prompt")
	}
}

func TestAnalyzeResponseNeutralOnInvocationFailure(t *testing.T) {
	rec, form := analyzerFixtures()
	svc := NewAnalyzerService(&fakeInvoker{err: errBroken}, testModels)

	result := svc.AnalyzeResponse(context.Background(), rec, form)
	if result.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral fallback", result.Sentiment)
	}
	if result.Keywords == nil || result.Flags == nil {
		t.Error("fallback slices should be empty, not nil")
	}
}

func TestAnalyzeResponseNeutralOnMalformedOutput(t *testing.T) {
	rec, form := analyzerFixtures()
	svc := NewAnalyzerService(&fakeInvoker{output: "not json"}, testModels)

	result := svc.AnalyzeResponse(context.Background(), rec, form)
	if result.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral fallback", result.Sentiment)
	}
}

func TestAnalyzeResponseNeutralWhenNothingFilled(t *testing.T) {
	form := testForm()
	rec := &model.ResponseRecord{
		ID:      "resp_1",
		FormID:  form.ID,
		Answers: []model.Answer{{ElementID: "el_name", Value: "  "}},
	}
	invoker := &fakeInvoker{output: analysisJSON}
	svc := NewAnalyzerService(invoker, testModels)

	result := svc.AnalyzeResponse(context.Background(), rec, form)
	if result.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %q", result.Sentiment)
	}
	if len(invoker.prompts) != 0 {
		t.Error("no model call should happen for an empty submission")
	}
}
