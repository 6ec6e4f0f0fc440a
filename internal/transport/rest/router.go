package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"formforge/internal/service"
	"formforge/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	GeneratorService  *service.GeneratorService
	SubmissionService *service.SubmissionService
	InsightService    *service.InsightService
	AnalyticsService  *service.AnalyticsService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	formHandler := handler.NewFormHandler(c.GeneratorService, c.AnalyticsService)
	responseHandler := handler.NewResponseHandler(c.SubmissionService)
	insightHandler := handler.NewInsightHandler(c.InsightService, c.AnalyticsService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/forms/generate", formHandler.Generate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/insights", insightHandler.GetInsights).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/optimize", insightHandler.Optimize).Methods("POST", "OPTIONS")
	v1.HandleFunc("/validations/suggest", formHandler.SuggestValidations).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
