package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SPPA_LLM_PROVIDER", "SPPA_ANTHROPIC_API_KEY", "SPPA_OPENAI_API_KEY",
		"SPPA_GEMINI_API_KEY", "SPPA_OPENROUTER_API_KEY", "SPPA_OPENAI_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("SPPA_LLM_PROVIDER", "openai")
	t.Setenv("SPPA_OPENAI_API_KEY", "sk-env")
	t.Setenv("SPPA_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("base URL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model default = %q", cfg.OpenAI.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
}

func TestDiscover(t *testing.T) {
	clearProviderEnv(t)

	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg = DefaultConfig()
	if !cfg.Discover() {
		t.Fatal("expected discovery")
	}
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
		t.Errorf("cfg = %+v", cfg)
	}

	// An explicit provider is left alone.
	cfg = Config{Provider: ProviderMock}
	if !cfg.Discover() || cfg.Provider != ProviderMock {
		t.Errorf("explicit provider changed to %q", cfg.Provider)
	}
}

func TestNewProvider(t *testing.T) {
	clearProviderEnv(t)
	ctx := context.Background()

	if _, err := NewProvider(ctx, Config{Provider: ProviderNone}, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("none: err = %v, want ErrDisabled", err)
	}
	if _, err := NewProvider(ctx, DefaultConfig(), nil); err == nil {
		t.Error("expected error with nothing configured")
	}
	if _, err := NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil); err == nil {
		t.Error("expected error for missing key")
	}

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if r, ok := p.(*RetryProvider); !ok || r.deadline != cfg.Timeout {
		t.Errorf("expected retry decorator outermost with the configured deadline, got %T", p)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		wantEnv string // named in the error; "" means valid
	}{
		"anthropic key":       {Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-ant"}}, ""},
		"anthropic no key":    {Config{Provider: ProviderAnthropic}, "SPPA_ANTHROPIC_API_KEY"},
		"openai no key":       {Config{Provider: ProviderOpenAI}, "SPPA_OPENAI_API_KEY"},
		"gemini no key":       {Config{Provider: ProviderGemini}, "SPPA_GEMINI_API_KEY"},
		"openrouter key":      {Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, ""},
		"openrouter no key":   {Config{Provider: ProviderOpenRouter}, "SPPA_OPENROUTER_API_KEY"},
		"offline mock":        {Config{Provider: ProviderMock}, ""},
		"suggestions off":     {Config{Provider: ProviderNone}, ""},
		"nothing configured":  {Config{}, "no LLM provider"},
		"misspelled provider": {Config{Provider: "antropic"}, `"antropic"`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantEnv == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantEnv) {
				t.Fatalf("Validate() = %v, want mention of %s", err, tt.wantEnv)
			}
		})
	}
}
