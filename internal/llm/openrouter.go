package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterSearchSuffix selects a model variant with web search enabled.
const openRouterSearchSuffix = ":online"

// OpenRouterProvider speaks OpenRouter's OpenAI-compatible API. Model names
// are OpenRouter slugs such as "google/gemini-2.5-flash" and are not
// aliased.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAIProviderRaw(OpenAIConfig(cfg), &http.Client{
		Transport: attribution{next: http.DefaultTransport},
	})
	inner.searchSuffix = openRouterSearchSuffix
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func (p *OpenRouterProvider) Name() string { return "openrouter" }

// attribution adds the headers OpenRouter uses to identify the calling app.
type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", "https://github.com/civiclink/civiclink")
	r.Header.Set("X-Title", "CivicLink")
	return a.next.RoundTrip(r)
}
