package ai

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"formforge/internal/model"
)

var validate = validator.New()

// StripFences removes a surrounding markdown code fence (with optional
// language tag) from model output. Nothing else is extracted; output that is
// not JSON after fence removal is malformed.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func checkRequired(raw string, contract Contract) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &MalformedOutputError{Reason: contract.Name + " output is not a JSON object: " + err.Error(), Raw: raw}
	}
	for _, key := range contract.Required {
		if _, ok := fields[key]; !ok {
			return nil, &MalformedOutputError{Reason: contract.Name + " output missing required key \"" + key + "\"", Raw: raw}
		}
	}
	return fields, nil
}

// ParseFormDefinition decodes generation output into a FormDefinition and
// enforces the form contract: required keys present, every element type in
// the allowed set, every element labeled. Inverted validation bounds are
// normalized rather than rejected.
func ParseFormDefinition(raw string) (*model.FormDefinition, error) {
	cleaned := StripFences(raw)
	if _, err := checkRequired(cleaned, FormContract); err != nil {
		return nil, err
	}

	var form model.FormDefinition
	if err := json.Unmarshal([]byte(cleaned), &form); err != nil {
		return nil, &MalformedOutputError{Reason: "form output does not decode: " + err.Error(), Raw: raw}
	}

	for i, el := range form.Elements {
		if !el.Type.Valid() {
			return nil, &MalformedOutputError{Reason: "element " + strconv.Itoa(i) + " has unknown type \"" + string(el.Type) + "\"", Raw: raw}
		}
		if strings.TrimSpace(el.Label) == "" {
			return nil, &MalformedOutputError{Reason: "element " + strconv.Itoa(i) + " has no label", Raw: raw}
		}
		form.Elements[i].Validation.Normalize()
	}

	if err := validate.Struct(&form); err != nil {
		return nil, &MalformedOutputError{Reason: "form output fails validation: " + err.Error(), Raw: raw}
	}
	return &form, nil
}

// ParseAnalysis decodes per-response analysis output and enforces the
// sentiment enumeration. Nil slices come back empty so callers never see nil.
func ParseAnalysis(raw string) (*model.AnalysisResult, error) {
	cleaned := StripFences(raw)
	if _, err := checkRequired(cleaned, AnalysisContract); err != nil {
		return nil, err
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedOutputError{Reason: "analysis output does not decode: " + err.Error(), Raw: raw}
	}
	if !result.Sentiment.Valid() {
		return nil, &MalformedOutputError{Reason: "analysis output has unknown sentiment \"" + string(result.Sentiment) + "\"", Raw: raw}
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	if result.Flags == nil {
		result.Flags = []string{}
	}
	return &result, nil
}

// ParseInsight decodes aggregate insight output.
func ParseInsight(raw string) (*model.InsightResult, error) {
	cleaned := StripFences(raw)
	if _, err := checkRequired(cleaned, InsightContract); err != nil {
		return nil, err
	}

	var result model.InsightResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedOutputError{Reason: "insight output does not decode: " + err.Error(), Raw: raw}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	if result.Patterns == nil {
		result.Patterns = []string{}
	}
	if result.ImprovementSuggestions == nil {
		result.ImprovementSuggestions = []string{}
	}
	return &result, nil
}
