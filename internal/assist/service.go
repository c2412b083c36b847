// Package assist runs the LLM requests that work on an existing question:
// explanations, background material and translation.
package assist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/mcq"
)

// Languages lists the translation targets the CLI offers.
var Languages = []string{"hindi", "spanish", "french"}

// ParseLanguage normalises a language name and checks it is supported.
func ParseLanguage(s string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(Languages, lang) {
		return "", &mcq.ValidationError{
			Field:   "language",
			Message: fmt.Sprintf("must be one of %s (got %q)", strings.Join(Languages, ", "), s),
		}
	}
	return lang, nil
}

// Progress is called after each question of a set is translated.
type Progress func(done, total int)

// Service wraps a provider with the assist prompts.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates an assist service. logger may be nil.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// Explain returns a detailed explanation of q's correct answer.
func (s *Service) Explain(ctx context.Context, q mcq.Question, maxTokens int) (string, error) {
	if err := checkMaxTokens(maxTokens); err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	req := llm.UserPrompt(ExplainPrompt(q), maxTokens)
	req.System = explainSystemPrompt
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("explanation: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Prerequisites returns background material needed to approach q.
func (s *Service) Prerequisites(ctx context.Context, q mcq.Question, maxTokens int) (string, error) {
	if err := checkMaxTokens(maxTokens); err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePrerequisites)

	req := llm.UserPrompt(PrerequisitesPrompt(q), maxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("prerequisites: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// TranslateText translates a single string. Blank input is returned as is
// without a request.
func (s *Service) TranslateText(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeTranslate)

	resp, err := s.provider.Generate(ctx, llm.UserPrompt(TranslatePrompt(text, language), s.cfg.TranslateMaxTokens))
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", language, err)
	}
	out := strings.TrimSpace(resp.Text)
	if out == "" {
		return "", fmt.Errorf("translate to %s: %w", language, &llm.ErrInvalidResponse{Err: errors.New("empty translation")})
	}
	return out, nil
}

// TranslateSet returns a new set with every question, option and
// explanation translated. Labels and correct answers are kept; set is not
// modified. The first failed request aborts the whole translation.
func (s *Service) TranslateSet(ctx context.Context, set *mcq.QuestionSet, language string, progress Progress) (*mcq.QuestionSet, error) {
	lang, err := ParseLanguage(language)
	if err != nil {
		return nil, err
	}

	s.logger.Info("translating question set",
		zap.String("topic", set.Topic()),
		zap.String("language", lang),
		zap.Int("questions", len(set.Questions)),
	)

	out := &mcq.QuestionSet{
		Specialization: set.Specialization,
		Subfield:       set.Subfield,
		Type:           set.Type,
		Language:       lang,
		GeneratedAt:    set.GeneratedAt,
		Questions:      make([]mcq.Question, 0, len(set.Questions)),
	}
	for i, q := range set.Questions {
		tq, err := s.translateQuestion(ctx, q, lang)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		out.Questions = append(out.Questions, tq)
		if progress != nil {
			progress(i+1, len(set.Questions))
		}
	}
	return out, nil
}

func (s *Service) translateQuestion(ctx context.Context, q mcq.Question, lang string) (mcq.Question, error) {
	text, err := s.TranslateText(ctx, q.Text, lang)
	if err != nil {
		return mcq.Question{}, err
	}

	opts := make(mcq.Options, len(q.Options))
	for i, o := range q.Options {
		t, err := s.TranslateText(ctx, o.Text, lang)
		if err != nil {
			return mcq.Question{}, fmt.Errorf("option %s: %w", o.Label, err)
		}
		opts[i] = mcq.Option{Label: o.Label, Text: t}
	}

	explanation, err := s.TranslateText(ctx, q.Explanation, lang)
	if err != nil {
		return mcq.Question{}, fmt.Errorf("explanation: %w", err)
	}

	return mcq.Question{
		Text:        text,
		Options:     opts,
		Correct:     q.Correct,
		Explanation: explanation,
	}, nil
}

func checkMaxTokens(n int) error {
	if n < 100 {
		return &mcq.ValidationError{Field: "max-tokens", Message: "must be at least 100"}
	}
	return nil
}
