package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/service"
)

// InsightHandler handles insight and optimization endpoints
type InsightHandler struct {
	insightSvc   *service.InsightService
	analyticsSvc *service.AnalyticsService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightSvc *service.InsightService, analyticsSvc *service.AnalyticsService) *InsightHandler {
	return &InsightHandler{
		insightSvc:   insightSvc,
		analyticsSvc: analyticsSvc,
	}
}

// GetInsights handles GET /v1/forms/{formId}/insights. Insight synthesis
// degrades internally, so this always answers 200.
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	result := h.insightSvc.GenerateInsights(r.Context(), formID)
	writeJSON(w, http.StatusOK, result)
}

// Optimize handles POST /v1/forms/{formId}/optimize
func (h *InsightHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	result, err := h.analyticsSvc.OptimizeForm(r.Context(), formID)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientData) {
			writeJSON(w, http.StatusConflict, result)
			return
		}
		var optErr *service.OptimizationFailedError
		if errors.As(err, &optErr) {
			writeError(w, http.StatusBadGateway, optErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
