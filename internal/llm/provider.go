package llm

import "context"

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text completion.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation. Every call mcqgen makes is single-turn,
	// so this holds one user message.
	Messages []Message

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request.
func UserPrompt(prompt string, maxTokens int) Request {
	return Request{
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion.
	Text string

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalised to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)
