package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.5-flash"

	// Attribution headers OpenRouter uses to list the calling app.
	openRouterReferer = "https://github.com/abhisek/sppa"
	openRouterTitle   = "sppa placement assessment"
)

// openRouterModels maps the friendly names accepted by the other
// providers to OpenRouter's vendor-prefixed IDs, so switching provider
// does not require rewriting llm.*.model.
var openRouterModels = map[string]string{
	"gemini-flash":  "google/gemini-2.5-flash",
	"gpt-4o":        "openai/gpt-4o",
	"gpt-4o-mini":   "openai/gpt-4o-mini",
	"claude-sonnet": "anthropic/claude-sonnet-4",
	"claude-haiku":  "anthropic/claude-haiku-4.5",
}

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	oaiCfg := OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	}
	if oaiCfg.BaseURL == "" {
		oaiCfg.BaseURL = defaultOpenRouterBaseURL
	}
	if oaiCfg.Model == "" {
		oaiCfg.Model = defaultOpenRouterModel
	}

	client := &http.Client{Transport: attribution{base: http.DefaultTransport}}
	return &OpenRouterProvider{OpenAIProvider: newOpenAICompatible(oaiCfg, openRouterModels, client)}, nil
}

// attribution stamps every request with OpenRouter's app headers.
type attribution struct {
	base http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.base.RoundTrip(r)
}
