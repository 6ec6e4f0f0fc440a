package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
)

// FormHandler handles form generation and persistence endpoints
type FormHandler struct {
	generatorSvc *service.GeneratorService
	analyticsSvc *service.AnalyticsService
}

// NewFormHandler creates a new form handler
func NewFormHandler(generatorSvc *service.GeneratorService, analyticsSvc *service.AnalyticsService) *FormHandler {
	return &FormHandler{
		generatorSvc: generatorSvc,
		analyticsSvc: analyticsSvc,
	}
}

// GenerateFormRequest is the request body for generating a form
type GenerateFormRequest struct {
	Description string `json:"description"`
}

// SuggestValidationsRequest carries the form to suggest rules for
type SuggestValidationsRequest struct {
	Form model.FormDefinition `json:"form"`
}

// Generate handles POST /v1/forms/generate
func (h *FormHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	form, err := h.generatorSvc.GenerateForm(r.Context(), req.Description)
	if err != nil {
		var genErr *service.GenerationFailedError
		if errors.As(err, &genErr) {
			writeError(w, http.StatusBadGateway, genErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.FormDefinition
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := h.generatorSvc.SaveForm(r.Context(), &form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": id})
}

// Get handles GET /v1/forms/{formId}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	form, err := h.generatorSvc.GetForm(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// SuggestValidations handles POST /v1/validations/suggest
func (h *FormHandler) SuggestValidations(w http.ResponseWriter, r *http.Request) {
	var req SuggestValidationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestions := h.analyticsSvc.SuggestValidations(&req.Form)
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}
