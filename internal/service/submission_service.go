package service

import (
	"context"
	"errors"

	"formforge/internal/model"
	"formforge/internal/repository"
)

// AnalysisScheduler accepts a stored response for background analysis.
// Enqueue must not block; delivery is best effort.
type AnalysisScheduler interface {
	Enqueue(rec *model.ResponseRecord, form *model.FormDefinition)
}

// SubmissionService stores responses and hands them to the analysis
// scheduler. Storage is the operation; analysis is auxiliary and never
// affects the submission outcome.
type SubmissionService struct {
	formRepo     repository.FormRepo
	responseRepo repository.ResponseRepo
	scheduler    AnalysisScheduler
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(formRepo repository.FormRepo, responseRepo repository.ResponseRepo) *SubmissionService {
	return &SubmissionService{
		formRepo:     formRepo,
		responseRepo: responseRepo,
	}
}

// SetScheduler wires the background analysis scheduler after construction.
func (s *SubmissionService) SetScheduler(scheduler AnalysisScheduler) {
	s.scheduler = scheduler
}

// Submit stores a response against its form and schedules analysis. The
// returned identifier is the stored response's.
func (s *SubmissionService) Submit(ctx context.Context, rec *model.ResponseRecord) (string, error) {
	form, err := s.formRepo.GetByID(ctx, rec.FormID)
	if err != nil {
		return "", err
	}
	if form == nil {
		return "", errors.New("form not found: " + rec.FormID)
	}

	if rec.Status == "" {
		if rec.Meta.CompletionPct >= 100 {
			rec.Status = model.StatusComplete
		} else {
			rec.Status = model.StatusPartial
		}
	}

	id, err := s.responseRepo.Create(ctx, rec)
	if err != nil {
		return "", err
	}

	if s.scheduler != nil {
		s.scheduler.Enqueue(rec, form)
	}
	return id, nil
}

// GetResponse loads a stored response. Returns nil when not found.
func (s *SubmissionService) GetResponse(ctx context.Context, id string) (*model.ResponseRecord, error) {
	return s.responseRepo.GetByID(ctx, id)
}
