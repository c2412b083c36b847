package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by NewProvider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderPerplexity = "perplexity"
	ProviderLiteLLM    = "litellm"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend to use. See the Provider* constants.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter CompatConfig
	Perplexity CompatConfig
	LiteLLM    CompatConfig
	Ollama     OllamaConfig
	Retry      RetryConfig

	// Timeout bounds a single provider call. It is set on the SDK's
	// HTTP client, so each retry attempt gets the full budget.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// CompatConfig configures a service that speaks the OpenAI chat API:
// OpenRouter, Perplexity or a LiteLLM proxy.
type CompatConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OllamaConfig configures a local Ollama server.
type OllamaConfig struct {
	ServerURL string // Default: "http://localhost:11434"
	Model     string // Default: "llama3.2"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration // Also the minimum wait between attempts
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderPerplexity,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		OpenRouter: CompatConfig{
			Model:   "google/gemini-2.0-flash-exp",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Perplexity: CompatConfig{
			Model:   "sonar",
			BaseURL: defaultPerplexityBaseURL,
		},
		LiteLLM: CompatConfig{
			Model:   "gpt-4o-mini",
			BaseURL: defaultLiteLLMBaseURL,
		},
		Ollama: OllamaConfig{
			ServerURL: defaultOllamaServerURL,
			Model:     "llama3.2",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 2 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// ConfigFromEnv builds a Config from the standard provider environment
// variables, falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.Perplexity.APIKey = os.Getenv("PERPLEXITY_API_KEY")

	cfg.LiteLLM.APIKey = os.Getenv("LITELLM_API_KEY")
	if u := os.Getenv("LITELLM_BASE_URL"); u != "" {
		cfg.LiteLLM.BaseURL = u
	}
	if u := os.Getenv("OLLAMA_HOST"); u != "" {
		if !strings.Contains(u, "://") {
			u = "http://" + u
		}
		cfg.Ollama.ServerURL = u
	}

	return cfg
}

// NormalizeProvider maps user-facing provider names to the canonical ones.
func NormalizeProvider(name string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(name)); p {
	case "claude", ProviderAnthropic:
		return ProviderAnthropic, nil
	case "google", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI, ProviderOpenRouter, ProviderPerplexity, ProviderLiteLLM, ProviderOllama, ProviderMock:
		return p, nil
	}
	return "", fmt.Errorf("unknown LLM provider: %q", name)
}

// SetModel overrides the model of the selected provider. A leading
// "<provider>/" prefix is dropped for direct providers, so
// "perplexity/sonar" and "sonar" select the same model.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = stripProviderPrefix(model, "anthropic", "claude")
	case ProviderOpenAI:
		c.OpenAI.Model = stripProviderPrefix(model, "openai")
	case ProviderGemini:
		c.Gemini.Model = stripProviderPrefix(model, "gemini", "google")
	case ProviderPerplexity:
		c.Perplexity.Model = stripProviderPrefix(model, "perplexity")
	case ProviderOllama:
		c.Ollama.Model = stripProviderPrefix(model, "ollama")
	case ProviderOpenRouter:
		// Routed model IDs keep their vendor prefix.
		c.OpenRouter.Model = model
	case ProviderLiteLLM:
		c.LiteLLM.Model = model
	}
}

// SetBaseURL overrides the endpoint of the selected provider, where the
// provider supports one.
func (c *Config) SetBaseURL(url string) {
	if url == "" {
		return
	}
	switch c.Provider {
	case ProviderOpenAI:
		c.OpenAI.BaseURL = url
	case ProviderOpenRouter:
		c.OpenRouter.BaseURL = url
	case ProviderPerplexity:
		c.Perplexity.BaseURL = url
	case ProviderLiteLLM:
		c.LiteLLM.BaseURL = url
	case ProviderOllama:
		c.Ollama.ServerURL = url
	}
}

// Model returns the model configured for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderPerplexity:
		return c.Perplexity.Model
	case ProviderLiteLLM:
		return c.LiteLLM.Model
	case ProviderOllama:
		return c.Ollama.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderPerplexity:
		if c.Perplexity.APIKey == "" {
			return fmt.Errorf("PERPLEXITY_API_KEY is required for the perplexity provider")
		}
	case ProviderLiteLLM:
		if c.LiteLLM.BaseURL == "" {
			return fmt.Errorf("LITELLM_BASE_URL is required for the litellm provider")
		}
	case ProviderOllama, ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	return nil
}

func stripProviderPrefix(model string, prefixes ...string) string {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(model, p+"/"); ok {
			return rest
		}
	}
	return model
}
