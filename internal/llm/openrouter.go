package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultPerplexityBaseURL = "https://api.perplexity.ai"
	defaultLiteLLMBaseURL    = "http://localhost:4000"
)

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
func NewOpenRouterProvider(cfg CompatConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	return newCompatProvider(cfg, defaultOpenRouterBaseURL, httpClient), nil
}

// NewPerplexityProvider creates a provider targeting the Perplexity API.
func NewPerplexityProvider(cfg CompatConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("perplexity API key is required")
	}
	return newCompatProvider(cfg, defaultPerplexityBaseURL, httpClient), nil
}

// NewLiteLLMProvider creates a provider targeting a LiteLLM proxy. The
// proxy may run without authentication, so the key is optional.
func NewLiteLLMProvider(cfg CompatConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = "sk-litellm"
	}
	return newCompatProvider(cfg, defaultLiteLLMBaseURL, httpClient), nil
}

func newCompatProvider(cfg CompatConfig, defaultBaseURL string, httpClient *http.Client) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	p := newOpenAIProviderRaw(cfg.APIKey, baseURL, cfg.Model, httpClient)
	p.legacyMaxTokens = true
	return p
}
