package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{System: "sys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(ctx, Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(ctx, Request{}); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable once drained, got %v", err)
	}

	if mock.CallCount() != 3 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestMockProvider_PurposeQueues(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`shared`)}).
		For(PurposeClassify, MockResponse{Content: json.RawMessage(`{"category":"Other","sub_category":"Other"}`)})

	chat, err := mock.Generate(WithPurpose(context.Background(), PurposeChat), Request{})
	if err != nil || chat.Text() != "shared" {
		t.Fatalf("chat got %v, %v", chat, err)
	}
	cls, err := mock.Generate(WithPurpose(context.Background(), PurposeClassify), Request{})
	if err != nil || !strings.Contains(cls.Text(), "category") {
		t.Fatalf("classify got %v, %v", cls, err)
	}
	if mock.Purposes[0] != PurposeChat || mock.Purposes[1] != PurposeClassify {
		t.Fatalf("purposes not recorded: %v", mock.Purposes)
	}
}

func TestErrorForStatus(t *testing.T) {
	cause := errors.New("boom")
	var rl *ErrRateLimit
	var auth *ErrAuthentication
	var unavail *ErrProviderUnavailable
	if !errors.As(errorForStatus(429, cause), &rl) {
		t.Fatal("429 should be a rate limit")
	}
	if !errors.As(errorForStatus(401, cause), &auth) {
		t.Fatal("401 should be an auth error")
	}
	if err := errorForStatus(503, cause); !errors.As(err, &unavail) || !errors.Is(err, cause) {
		t.Fatalf("503 should wrap the cause as unavailable, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuizGen)
	if p := PurposeFrom(ctx); p != PurposeQuizGen {
		t.Fatalf("expected quiz-gen, got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateMessageNamesVariable(t *testing.T) {
	err := Config{Provider: "openrouter"}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "CIVICLINK_OPENROUTER_API_KEY"; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not mention %s", err, want)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"CIVICLINK_LLM_PROVIDER":      "anthropic",
		"CIVICLINK_ANTHROPIC_API_KEY": "sk-ant",
		"CIVICLINK_ANTHROPIC_MODEL":   "claude-sonnet",
		"CIVICLINK_LLM_TIMEOUT":       "15s",
		"ANTHROPIC_API_KEY":           "ignored",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("Anthropic = %+v", cfg.Anthropic)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("unset values should keep defaults, Gemini.Model = %q", cfg.Gemini.Model)
	}
}

func TestConfig_HasKey(t *testing.T) {
	if !(Config{Provider: "mock"}).HasKey() {
		t.Error("mock should not need a key")
	}
	if (Config{Provider: "gemini"}).HasKey() {
		t.Error("gemini without key reported HasKey")
	}
	if !(Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}).HasKey() {
		t.Error("gemini with key reported no key")
	}
}

func TestResponseText(t *testing.T) {
	r := &Response{Content: json.RawMessage("plain answer")}
	if r.Text() != "plain answer" {
		t.Fatalf("Text() = %q", r.Text())
	}
}

func TestDedupSources(t *testing.T) {
	got := dedupSources([]Source{
		{URI: "https://a.example"},
		{URI: ""},
		{URI: "https://b.example", Title: "B"},
		{URI: "https://a.example", Title: "dup"},
	})
	if len(got) != 2 || got[0].URI != "https://a.example" || got[1].Title != "B" {
		t.Fatalf("unexpected result %+v", got)
	}
}
