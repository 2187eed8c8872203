package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestCompleteSendsSystemPromptAndParams(t *testing.T) {
	var got struct {
		Model       string    `json:"model"`
		Temperature float32   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
		Messages    []Message `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":"Estou aqui."},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL, Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out, err := c.Complete(context.Background(), CompletionRequest{
		System:      "be kind",
		Messages:    []Message{{Role: "user", Content: "oi"}},
		Temperature: 0.8,
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Content != "Estou aqui." || out.PromptTokens != 12 || out.CompletionTokens != 3 {
		t.Fatalf("unexpected completion: %+v", out)
	}
	if got.Model != "gpt-4o" || got.MaxTokens != 200 || got.Temperature != 0.8 {
		t.Fatalf("unexpected request params: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "be kind" {
		t.Fatalf("system prompt not first: %+v", got.Messages)
	}
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.Nop(), Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Complete(context.Background(), CompletionRequest{Messages: []Message{{Role: "user", Content: "oi"}}}); err == nil {
		t.Fatalf("expected provider error")
	}
}
