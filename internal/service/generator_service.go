package service

import (
	"context"
	"errors"
	"strings"

	"formforge/internal/ai"
	"formforge/internal/config"
	"formforge/internal/model"
	"formforge/internal/repository"
)

// GeneratorService turns natural-language descriptions into typed form
// definitions. Every failure in the pipeline propagates as a
// *GenerationFailedError; there is no degraded form.
type GeneratorService struct {
	formRepo repository.FormRepo
	invoker  ai.Invoker
	models   config.GeminiModels
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(formRepo repository.FormRepo, invoker ai.Invoker, models config.GeminiModels) *GeneratorService {
	return &GeneratorService{
		formRepo: formRepo,
		invoker:  invoker,
		models:   models,
	}
}

// GenerateForm builds a form definition from the description. Every element
// in the returned definition has a unique identifier. The form is not
// persisted; SaveForm does that.
func (s *GeneratorService) GenerateForm(ctx context.Context, description string) (*model.FormDefinition, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &GenerationFailedError{Err: errors.New("description is empty")}
	}

	prompt := ai.BuildGenerateFormPrompt(description)
	raw, err := s.invoker.Invoke(ctx, s.models.Generate, prompt)
	if err != nil {
		return nil, &GenerationFailedError{Err: err}
	}

	form, err := ai.ParseFormDefinition(raw)
	if err != nil {
		return nil, &GenerationFailedError{Err: err}
	}

	form.Elements = model.AssignElementIDs(form.Elements)
	return form, nil
}

// SaveForm persists a form definition and returns its identifier.
func (s *GeneratorService) SaveForm(ctx context.Context, form *model.FormDefinition) (string, error) {
	form.Elements = model.AssignElementIDs(form.Elements)
	return s.formRepo.Create(ctx, form)
}

// GetForm loads a stored form definition. Returns nil when not found.
func (s *GeneratorService) GetForm(ctx context.Context, id string) (*model.FormDefinition, error) {
	return s.formRepo.GetByID(ctx, id)
}
