package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/events"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil to skip the request ledger.
func NewProvider(ctx context.Context, cfg Config, eventRepo events.Repo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := newHTTPClient(cfg.Timeout)

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic, httpClient)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI, httpClient)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini, httpClient)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter, httpClient)
	case ProviderPerplexity:
		base, err = NewPerplexityProvider(cfg.Perplexity, httpClient)
	case ProviderLiteLLM:
		base, err = NewLiteLLMProvider(cfg.LiteLLM, httpClient)
	case ProviderOllama:
		base, err = NewOllamaProvider(cfg.Ollama, httpClient)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)

	return retried, nil
}
