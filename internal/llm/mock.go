package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text       string
	Usage      Usage
	StopReason string // Defaults to "end"
	Err        error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewMockText is shorthand for a mock that answers once per text, in order.
func NewMockText(texts ...string) *MockProvider {
	m := NewMockProvider()
	for _, t := range texts {
		m.responses = append(m.responses, MockResponse{Text: t})
	}
	return m
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	stop := resp.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: stop,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt returns the user message of the most recent call.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 || len(m.Calls[len(m.Calls)-1].Messages) == 0 {
		return ""
	}
	msgs := m.Calls[len(m.Calls)-1].Messages
	return msgs[len(msgs)-1].Content
}
