package config

import (
	"os"
	"strconv"
)

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Generate is for form generation (quality matters, user is waiting once)
	Generate string `json:"generate"`

	// Analyze is for per-response analysis (background, needs to be fast)
	Analyze string `json:"analyze"`

	// Insight is for aggregate insight synthesis (deep analysis, cached)
	Insight string `json:"insight"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey     string       `json:"-"` // Never serialize
	BaseURL    string       `json:"baseUrl"`
	Models     GeminiModels `json:"models"`
	TimeoutMS  int          `json:"timeoutMs"`
	MaxRetries int          `json:"maxRetries"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Generate: getEnvOrDefault("GEMINI_MODEL_GENERATE", "gemini-2.0-flash"),
			Analyze:  getEnvOrDefault("GEMINI_MODEL_ANALYZE", "gemini-2.5-flash-preview-05-20"),
			Insight:  getEnvOrDefault("GEMINI_MODEL_INSIGHT", "gemini-2.0-flash"),
		},
		TimeoutMS:  getEnvIntOrDefault("GEMINI_TIMEOUT_MS", 10000),
		MaxRetries: getEnvIntOrDefault("GEMINI_MAX_RETRIES", 2),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
