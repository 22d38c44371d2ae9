package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workspace-query/config"
)

func newChatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if status == http.StatusOK {
			if rf, ok := req["response_format"].(map[string]any); !ok || rf["type"] != "json_object" {
				t.Errorf("expected json_object response_format, got %v", req["response_format"])
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAIAdapter_GenerateContent(t *testing.T) {
	ts := newChatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"intent\":\"help\"}"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
	}`)
	defer ts.Close()

	adapter := NewOpenAIAdapter(OpenAIConfig{Name: "deepseek", APIKey: "k", Model: "deepseek-chat", BaseURL: ts.URL})
	resp, err := adapter.GenerateContent(context.Background(), &Request{
		SystemInstruction: "classify",
		Messages:          []Message{{Role: RoleUser, Content: "help me"}},
		ResponseFormat:    FormatJSONObject,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `{"intent":"help"}` {
		t.Errorf("unexpected content %q", resp.Text())
	}
	if resp.ProviderName != "deepseek" || resp.Usage.TotalTokens != 17 {
		t.Errorf("unexpected metadata %+v", resp)
	}
}

func TestOpenAIAdapter_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrAuthentication},
		{name: "bad request", status: http.StatusBadRequest, want: ErrInvalidRequest},
		{name: "unknown model", status: http.StatusNotFound, want: ErrModelNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrProviderRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newChatServer(t, tt.status, `{"error": {"message": "nope", "type": "invalid_request_error"}}`)
			defer ts.Close()

			adapter := NewOpenAIAdapter(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: ts.URL})
			_, err := adapter.GenerateContent(context.Background(), helloRequest())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenAIAdapter_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()

	adapter := NewOpenAIAdapter(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: ts.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := adapter.GenerateContent(ctx, helloRequest())
	if !errors.Is(err, ErrProviderTimeout) {
		t.Errorf("expected ErrProviderTimeout, got %v", err)
	}
}

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "g", Model: "gemini-2.5-flash"},
			{Name: "qwen", Enabled: true, Priority: 1, APIKey: "q", Model: "qwen-plus", Timeout: "10s"},
			{Name: "openai", Enabled: false, Priority: 3, APIKey: "o", Model: "gpt-4o-mini"},
			{Name: "unknown", Enabled: true, Priority: 4, APIKey: "u", Model: "x"},
		},
	}

	providers, err := InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "qwen" || providers[1].Name() != "gemini" {
		t.Errorf("unexpected order: %s, %s", providers[0].Name(), providers[1].Name())
	}

	_, err = InitializeProviders(&config.LLMConfig{})
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestManager_FallsBackPastUnknownModel(t *testing.T) {
	ts := newChatServer(t, http.StatusNotFound, `{"error": {"message": "The model does not exist", "type": "invalid_request_error"}}`)
	defer ts.Close()

	primary := NewOpenAIAdapter(OpenAIConfig{APIKey: "k", Model: "retired-model", BaseURL: ts.URL})
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), helloRequest())
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
}
