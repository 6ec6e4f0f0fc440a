package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ElementType defines the type of form element
type ElementType string

const (
	ElementText     ElementType = "text"
	ElementTextarea ElementType = "textarea"
	ElementNumber   ElementType = "number"
	ElementEmail    ElementType = "email"
	ElementSelect   ElementType = "select"
	ElementRadio    ElementType = "radio"
	ElementCheckbox ElementType = "checkbox"
	ElementDate     ElementType = "date"
	ElementTime     ElementType = "time"
	ElementFile     ElementType = "file"
	ElementRating   ElementType = "rating"

	// Layout-only types carry no input value
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
	ElementDivider   ElementType = "divider"
)

// ElementTypes lists every allowed element type. Prompt construction and
// result validation both read from this list, so the generation contract
// cannot drift from what the parser accepts.
var ElementTypes = []ElementType{
	ElementText, ElementTextarea, ElementNumber, ElementEmail,
	ElementSelect, ElementRadio, ElementCheckbox, ElementDate,
	ElementTime, ElementFile, ElementRating,
	ElementHeading, ElementParagraph, ElementDivider,
}

// Valid reports whether t is one of the allowed element types.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsLayout reports whether t is a layout-only type that never collects input.
func (t ElementType) IsLayout() bool {
	return t == ElementHeading || t == ElementParagraph || t == ElementDivider
}

// ValidationRules holds optional constraints on an element's value.
type ValidationRules struct {
	Required  bool     `json:"required,omitempty" bson:"required,omitempty"`
	MinLength *int     `json:"minLength,omitempty" bson:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	MinValue  *float64 `json:"minValue,omitempty" bson:"minValue,omitempty"`
	MaxValue  *float64 `json:"maxValue,omitempty" bson:"maxValue,omitempty"`
	Pattern   string   `json:"pattern,omitempty" bson:"pattern,omitempty"`
}

// Normalize swaps inverted bounds so that min <= max always holds. The
// generation contract does not enforce this, so parsed rules are normalized
// defensively.
func (v *ValidationRules) Normalize() {
	if v == nil {
		return
	}
	if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
		v.MinLength, v.MaxLength = v.MaxLength, v.MinLength
	}
	if v.MinValue != nil && v.MaxValue != nil && *v.MinValue > *v.MaxValue {
		v.MinValue, v.MaxValue = v.MaxValue, v.MinValue
	}
}

// Option is one choice of a select, radio or checkbox element.
type Option struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// Element is one field, layout or display item within a form definition.
type Element struct {
	ID          string           `json:"id,omitempty" bson:"id"`
	Type        ElementType      `json:"type" bson:"type" validate:"required"`
	Label       string           `json:"label" bson:"label" validate:"required"`
	Placeholder string           `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Validation  *ValidationRules `json:"validation,omitempty" bson:"validation,omitempty"`
	Options     []Option         `json:"options,omitempty" bson:"options,omitempty"`
}

// FormSettings configures the submission surface of a form.
type FormSettings struct {
	SubmitButtonText string `json:"submitButtonText" bson:"submitButtonText"`
	SuccessMessage   string `json:"successMessage" bson:"successMessage"`
}

// FormDefinition is a typed form produced by generation or manual authoring.
// Once returned from generation it is immutable; later mutation is a storage
// concern.
type FormDefinition struct {
	ID          string       `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string       `json:"title" bson:"title" validate:"required"`
	Description string       `json:"description" bson:"description"`
	Elements    []Element    `json:"elements" bson:"elements" validate:"dive"`
	Settings    FormSettings `json:"settings" bson:"settings"`
	CreatedAt   time.Time    `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// LabelFor resolves an element identifier to its human label. Unknown
// identifiers resolve to themselves so callers always have something to show.
func (f *FormDefinition) LabelFor(elementID string) string {
	for _, el := range f.Elements {
		if el.ID == elementID {
			return el.Label
		}
	}
	return elementID
}

// AssignElementIDs gives every element without an identifier one that is
// unique within the sequence. Existing identifiers are kept (first claim
// wins; later duplicates are reassigned), so the result stays collision-free
// even if elements are reordered later. Running it on a fully identified
// sequence changes nothing.
func AssignElementIDs(elements []Element) []Element {
	out := make([]Element, len(elements))
	copy(out, elements)

	seen := make(map[string]bool, len(out))
	for i := range out {
		id := strings.TrimSpace(out[i].ID)
		if id == "" || seen[id] {
			id = newElementID(seen)
		}
		out[i].ID = id
		seen[id] = true
	}
	return out
}

func newElementID(seen map[string]bool) string {
	for {
		id := "el_" + strings.SplitN(uuid.NewString(), "-", 2)[0]
		if !seen[id] {
			return id
		}
	}
}
