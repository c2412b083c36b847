package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/events"
)

// LoggingProvider is a decorator that records every LLM request in the
// log and, when a repo is configured, in the request ledger.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo events.Repo
	logger    *zap.Logger
}

// WithLogging wraps a Provider with request logging. repo may be nil.
func WithLogging(p Provider, provider string, repo events.Repo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	requestID := uuid.NewString()

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := events.LLMRequest{
		RequestID:   requestID,
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("provider", l.provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Int64("latency_ms", latencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Error("LLM request failed", append(fields, zap.Error(err))...)
	} else {
		if resp.StopReason == StopMaxTokens {
			l.logger.Warn("LLM response truncated at max tokens", fields...)
		}
		l.logger.Info("LLM request completed", fields...)
	}

	// The ledger is best effort; a write failure never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn("failed to record LLM request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "[max_tokens: %d, temperature: %.2f]\n", req.MaxTokens, req.Temperature)
	return b.String()
}
