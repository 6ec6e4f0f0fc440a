package ai

import (
	"fmt"
	"strings"

	"formforge/internal/model"
)

// Prompt builders are pure functions: identical input yields byte-identical
// output, so tests can assert on the rendered text.

func allowedTypes() string {
	names := make([]string, len(model.ElementTypes))
	for i, t := range model.ElementTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// BuildGenerateFormPrompt renders the form-generation prompt for a
// natural-language description.
func BuildGenerateFormPrompt(description string) string {
	return fmt.Sprintf(`You are a form designer. Create a form definition from the description below.
Return ONLY valid JSON matching this schema:
{
  "title": "form title",
  "description": "one sentence describing the form",
  "elements": [{
    "type": "one of: %s",
    "label": "field label",
    "placeholder": "optional placeholder",
    "validation": {"required": true, "minLength": 0, "maxLength": 0, "minValue": 0, "maxValue": 0, "pattern": ""},
    "options": [{"label": "Choice", "value": "choice"}]
  }],
  "settings": {"submitButtonText": "Submit", "successMessage": "Thank you!"}
}

Omit "validation", "placeholder" and "options" where they do not apply.
Only select, radio and checkbox elements carry "options".
heading, paragraph and divider are layout elements and collect no input.

Description: %s

Design a complete, well-ordered form for this description.`, allowedTypes(), description)
}

// LabeledValue pairs a field label with the answer given for it, formatted
// for inclusion in an analysis prompt.
type LabeledValue struct {
	Label string
	Value string
}

// BuildAnalyzeResponsePrompt renders the per-response analysis prompt.
func BuildAnalyzeResponsePrompt(formTitle string, fields []LabeledValue) string {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", f.Label, f.Value))
	}

	return fmt.Sprintf(`You are analyzing one submission to the form "%s". Return ONLY valid JSON matching this schema:
{
  "sentiment": "positive" or "neutral" or "negative",
  "keywords": ["keyword1", "keyword2"],
  "summary": "one sentence summary of the submission",
  "flags": []
}

Add a flag string for anything unusual: spam, abuse, contradictory answers, or placeholder text.

Submission:
%s
Classify the overall sentiment, extract up to 5 keywords, and summarize.`, formTitle, sb.String())
}

// BuildInsightsPrompt renders the aggregate insight prompt from a form
// summary.
func BuildInsightsPrompt(summary model.FormSummary) string {
	return fmt.Sprintf(`Generate insights for a form based on its aggregate response data. Return ONLY valid JSON matching this schema:
{
  "overallTrends": "paragraph describing the dominant trends",
  "recommendations": ["recommendation 1", "recommendation 2"],
  "patterns": ["pattern 1", "pattern 2"],
  "improvementSuggestions": ["suggestion 1", "suggestion 2"]
}

Form: %s
Elements: %d (%s)
Responses: %d
Completion rate: %.1f%%
Average time spent: %.0f seconds

Identify response patterns, recommend operator actions, and suggest concrete form improvements.`,
		summary.Title, summary.ElementCount, strings.Join(summary.ElementTypes, ", "),
		summary.ResponseCount, summary.CompletionRate*100, summary.AvgTimeSec)
}
