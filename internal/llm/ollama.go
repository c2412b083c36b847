package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaServerURL = "http://localhost:11434"

// OllamaProvider implements Provider against a local Ollama server
// through langchaingo.
type OllamaProvider struct {
	llm   *ollama.LLM
	model string
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.ServerURL.
func NewOllamaProvider(cfg OllamaConfig, httpClient *http.Client) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = defaultOllamaServerURL
	}

	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
		ollama.WithModel(cfg.Model),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create Ollama client: %w", err)
	}

	return &OllamaProvider{llm: client, model: cfg.Model}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	var callOpts []llms.CallOption
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	result, err := p.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(result.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no choices in Ollama response")}
	}

	choice := result.Choices[0]
	resp := &Response{
		Text:       choice.Content,
		Model:      p.model,
		StopReason: StopEnd,
		Usage: Usage{
			InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
			OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
		},
	}
	resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	if choice.StopReason == "length" {
		resp.StopReason = StopMaxTokens
	}
	return resp, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

// intInfo reads a numeric generation-info entry whatever its integer type.
func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
