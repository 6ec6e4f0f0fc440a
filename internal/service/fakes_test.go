package service

import (
	"context"
	"errors"
	"strconv"

	"formforge/internal/model"
	"formforge/internal/repository"
)

type fakeFormRepo struct {
	forms map[string]*model.FormDefinition
	err   error
}

func newFakeFormRepo(forms ...*model.FormDefinition) *fakeFormRepo {
	r := &fakeFormRepo{forms: map[string]*model.FormDefinition{}}
	for _, f := range forms {
		r.forms[f.ID] = f
	}
	return r
}

func (r *fakeFormRepo) Create(ctx context.Context, form *model.FormDefinition) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if form.ID == "" {
		form.ID = "form_" + strconv.Itoa(len(r.forms)+1)
	}
	r.forms[form.ID] = form
	return form.ID, nil
}

func (r *fakeFormRepo) GetByID(ctx context.Context, id string) (*model.FormDefinition, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.forms[id], nil
}

func (r *fakeFormRepo) Update(ctx context.Context, form *model.FormDefinition) error {
	if r.err != nil {
		return r.err
	}
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) Delete(ctx context.Context, id string) error {
	delete(r.forms, id)
	return nil
}

type fakeResponseRepo struct {
	responses []*model.ResponseRecord
	attached  map[string]*model.AnalysisResult
	err       error
	attachErr error
}

func newFakeResponseRepo(responses ...*model.ResponseRecord) *fakeResponseRepo {
	return &fakeResponseRepo{
		responses: responses,
		attached:  map[string]*model.AnalysisResult{},
	}
}

func (r *fakeResponseRepo) Create(ctx context.Context, rec *model.ResponseRecord) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if rec.ID == "" {
		rec.ID = "resp_" + strconv.Itoa(len(r.responses)+1)
	}
	r.responses = append(r.responses, rec)
	return rec.ID, nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.ResponseRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, rec := range r.responses {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeResponseRepo) ListByFormID(ctx context.Context, q repository.ResponseQuery) ([]*model.ResponseRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*model.ResponseRecord
	for _, rec := range r.responses {
		if rec.FormID == q.FormID {
			out = append(out, rec)
		}
		if q.Limit > 0 && int64(len(out)) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) AttachAnalysis(ctx context.Context, id string, analysis *model.AnalysisResult) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	r.attached[id] = analysis
	return nil
}

// fakeInvoker returns canned output, or an error, and records prompts.
type fakeInvoker struct {
	output  string
	err     error
	prompts []string
}

func (f *fakeInvoker) Invoke(ctx context.Context, model, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

var errBroken = errors.New("broken")
