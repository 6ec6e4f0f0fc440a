package ai

import (
	"errors"
	"strings"
	"testing"
)

const validFormJSON = `{
  "title": "Customer Feedback",
  "description": "Tell us about your visit",
  "elements": [
    {"type": "text", "label": "Full Name"},
    {"type": "email", "label": "Email Address"},
    {"type": "rating", "label": "Overall rating"}
  ],
  "settings": {"submitButtonText": "Send", "successMessage": "Thanks!"}
}`

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormDefinition(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form, err := ParseFormDefinition(validFormJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if form.Title != "Customer Feedback" {
			t.Errorf("title = %q", form.Title)
		}
		if len(form.Elements) != 3 {
			t.Errorf("len(elements) = %d", len(form.Elements))
		}
	})

	t.Run("fenced valid", func(t *testing.T) {
		if _, err := ParseFormDefinition("```json\n" + validFormJSON + "\n```"); err != nil {
			t.Fatalf("fenced output should parse: %v", err)
		}
	})

	t.Run("trailing comma", func(t *testing.T) {
		raw := `{"title": "T", "description": "", "elements": [], "settings": {},}`
		_, err := ParseFormDefinition(raw)
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
	})

	t.Run("missing elements key", func(t *testing.T) {
		raw := `{"title": "T", "description": "", "settings": {}}`
		_, err := ParseFormDefinition(raw)
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
		if !strings.Contains(malformed.Reason, "elements") {
			t.Errorf("reason should name the missing key: %q", malformed.Reason)
		}
	})

	t.Run("unknown element type", func(t *testing.T) {
		raw := `{"title": "T", "description": "", "elements": [{"type": "dropdown", "label": "Pick"}], "settings": {}}`
		_, err := ParseFormDefinition(raw)
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
		if !strings.Contains(malformed.Reason, "dropdown") {
			t.Errorf("reason should name the bad type: %q", malformed.Reason)
		}
	})

	t.Run("wrong-typed title", func(t *testing.T) {
		raw := `{"title": 42, "description": "", "elements": [], "settings": {}}`
		var malformed *MalformedOutputError
		if _, err := ParseFormDefinition(raw); !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
	})

	t.Run("inverted bounds normalized", func(t *testing.T) {
		raw := `{"title": "T", "description": "", "elements": [
		  {"type": "number", "label": "Age", "validation": {"minValue": 120, "maxValue": 18}}
		], "settings": {}}`
		form, err := ParseFormDefinition(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := form.Elements[0].Validation
		if *v.MinValue != 18 || *v.MaxValue != 120 {
			t.Errorf("bounds not normalized: min=%g max=%g", *v.MinValue, *v.MaxValue)
		}
	})
}

func TestParseAnalysis(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw := `{"sentiment": "positive", "keywords": ["fast", "friendly"], "summary": "Happy customer", "flags": []}`
		result, err := ParseAnalysis(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Sentiment != "positive" {
			t.Errorf("sentiment = %q", result.Sentiment)
		}
	})

	t.Run("unknown sentiment", func(t *testing.T) {
		raw := `{"sentiment": "ecstatic", "keywords": [], "summary": "", "flags": []}`
		var malformed *MalformedOutputError
		if _, err := ParseAnalysis(raw); !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
	})

	t.Run("null slices come back empty", func(t *testing.T) {
		raw := `{"sentiment": "neutral", "keywords": null, "summary": "s", "flags": null}`
		result, err := ParseAnalysis(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Keywords == nil || result.Flags == nil {
			t.Error("nil slices should be normalized to empty")
		}
	})
}

func TestParseInsight(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw := `{"overallTrends": "Mostly positive", "recommendations": ["r1"], "patterns": ["p1"], "improvementSuggestions": []}`
		result, err := ParseInsight(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OverallTrends != "Mostly positive" {
			t.Errorf("overallTrends = %q", result.OverallTrends)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		raw := `{"overallTrends": "x", "recommendations": [], "patterns": []}`
		_, err := ParseInsight(raw)
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Fatalf("want MalformedOutputError, got %v", err)
		}
		if !strings.Contains(malformed.Reason, "improvementSuggestions") {
			t.Errorf("reason should name the missing key: %q", malformed.Reason)
		}
	})
}
