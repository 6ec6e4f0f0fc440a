package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"formforge/internal/config"
)

func testConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		TimeoutMS:  2000,
		MaxRetries: 1,
	}
}

func geminiBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + `"` + text + `"` + `}]}}]}`
}

func TestClientInvokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("api key missing from query")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(geminiBody(`{\"ok\":true}`)))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	text, err := c.Invoke(context.Background(), "test-model", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"ok":true}` {
		t.Errorf("text = %q", text)
	}
}

func TestClientInvokeRetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(geminiBody("recovered")))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	text, err := c.Invoke(context.Background(), "test-model", "hello")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if text != "recovered" {
		t.Errorf("text = %q", text)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestClientInvokeNoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Invoke(context.Background(), "test-model", "hello")

	var invErr *ModelInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("want ModelInvocationError, got %v", err)
	}
	if invErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", invErr.Status)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestClientInvokeEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	_, err := c.Invoke(context.Background(), "test-model", "hello")
	var invErr *ModelInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("want ModelInvocationError, got %v", err)
	}
}

func TestClientInvokeDisabled(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	c := NewClient(cfg)

	_, err := c.Invoke(context.Background(), "test-model", "hello")
	var invErr *ModelInvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("want ModelInvocationError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("no request should be made without an API key")
	}
}
