package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"formforge/internal/config"
)

// Invoker sends one prompt to a model and returns the raw text payload.
// Services depend on this interface so tests can substitute a fake.
type Invoker interface {
	Invoke(ctx context.Context, model, prompt string) (string, error)
}

// Client talks to the Gemini generateContent API.
type Client struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewClient creates a client from the given AI configuration.
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

const retryBaseDelay = 200 * time.Millisecond

// Invoke sends the prompt to the named model. Transport errors and
// 429/5xx statuses are retried up to cfg.MaxRetries times with exponential
// backoff; other statuses fail immediately. A response that arrives intact
// is never retried, whatever its content.
func (c *Client) Invoke(ctx context.Context, model, prompt string) (string, error) {
	if !c.cfg.IsEnabled() {
		return "", &ModelInvocationError{Op: model, Err: errors.New("no API key configured")}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return "", &ModelInvocationError{Op: model, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		text, retryable, err := c.call(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *Client) call(ctx context.Context, model, prompt string) (text string, retryable bool, err error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, &ModelInvocationError{Op: model, Err: err}
	}

	url := fmt.Sprintf("%s?key=%s", c.cfg.ModelEndpoint(model), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", false, &ModelInvocationError{Op: model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, &ModelInvocationError{Op: model, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, &ModelInvocationError{Op: model, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, &ModelInvocationError{
			Op:     model,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", false, &ModelInvocationError{Op: model, Err: err}
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, false, nil
	}
	return "", false, &ModelInvocationError{Op: model, Err: errors.New("empty response from Gemini")}
}
