package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
)

// ResponseHandler handles submission endpoints
type ResponseHandler struct {
	submissionSvc *service.SubmissionService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(submissionSvc *service.SubmissionService) *ResponseHandler {
	return &ResponseHandler{submissionSvc: submissionSvc}
}

// SubmitResponseRequest is the request body for submitting a response
type SubmitResponseRequest struct {
	Answers []model.Answer     `json:"answers"`
	Meta    model.ResponseMeta `json:"meta"`
}

// Submit handles POST /v1/forms/{formId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := &model.ResponseRecord{
		FormID:  formID,
		Answers: req.Answers,
		Meta:    req.Meta,
	}

	id, err := h.submissionSvc.Submit(r.Context(), rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"responseId": id})
}
