package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"targeting-backend/internal/llm"
)

func newTestClient(url string) *Client {
	return &Client{
		apiKey:     "test-key",
		model:      "claude-test",
		apiURL:     url,
		maxTokens:  256,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient("key", "  ")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.model != defaultModel {
		t.Fatalf("expected default model, got %q", c.model)
	}
}

func TestCompleteSendsSystemAndMessages(t *testing.T) {
	var captured struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    string `json:"system"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != apiVersion {
			t.Errorf("unexpected version header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello back"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Complete(context.Background(), "be brief", []llm.Message{
		{Role: llm.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "hello back" {
		t.Fatalf("unexpected completion %q", got)
	}
	if captured.System != "be brief" {
		t.Fatalf("system not forwarded, got %q", captured.System)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Content != "hello" {
		t.Fatalf("messages not forwarded: %+v", captured.Messages)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Complete(context.Background(), "", []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "slow down") {
		t.Fatalf("expected api error surfaced, got %v", err)
	}
}

func TestCompleteRejectsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Complete(context.Background(), "", []llm.Message{{Role: llm.RoleUser, Content: "hi"}}); err == nil {
		t.Fatal("expected error for missing content")
	}
}

func TestCompleteRequiresMessages(t *testing.T) {
	c := newTestClient("http://unused.invalid")
	if _, err := c.Complete(context.Background(), "system", nil); err == nil {
		t.Fatal("expected error for empty messages")
	}
}
