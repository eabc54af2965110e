package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicExplain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.System == "" || len(req.Messages) != 1 {
			t.Errorf("request = %+v", req)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "Earnings beat drove the spike."}},
			"model":   "claude-3-5-haiku-20241022",
			"usage":   map[string]int{"input_tokens": 100, "output_tokens": 20},
		})
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Explain(context.Background(), ExplainRequest{Prompt: "why the spike?"})
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if resp.Summary != "Earnings beat drove the spike." {
		t.Errorf("summary = %q", resp.Summary)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("tokens = %d", resp.TokensUsed)
	}
}

func TestAnthropicExplain_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(Config{APIKey: "bad-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = p.Explain(context.Background(), ExplainRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("expected error without API key")
	}
}
