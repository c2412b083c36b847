package problemgen

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/mcq"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
	now      func() time.Time
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
// logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger, now: time.Now}
}

// Generate produces a multiple-choice set for cfg.
func (g *LLMGenerator) Generate(ctx context.Context, cfg mcq.QuestionConfig) (*mcq.QuestionSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeGenerate)

	g.logger.Info("generating questions",
		zap.String("topic", cfg.Topic()),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("count", cfg.NumQuestions),
		zap.Int("options", cfg.NumOptions),
		zap.Int("correct_answers", cfg.NumCorrectAnswers),
	)

	text, err := g.complete(ctx, BuildMCQPrompt(cfg), cfg.MaxTokens)
	if err != nil {
		return nil, err
	}

	parser := Parser{Kind: mcq.TypeMultipleChoice, BareNone: cfg.NumCorrectAnswers == 0}
	questions := g.accept(text, parser, Input{
		Kind:       mcq.TypeMultipleChoice,
		NumOptions: cfg.NumOptions,
		NumCorrect: cfg.NumCorrectAnswers,
	}, cfg.NumQuestions)

	return &mcq.QuestionSet{
		Specialization: cfg.Field,
		Subfield:       cfg.Subfield,
		Type:           mcq.TypeMultipleChoice,
		GeneratedAt:    g.now(),
		Questions:      questions,
	}, nil
}

// GenerateBinary produces a true/false or yes/no set for cfg.
func (g *LLMGenerator) GenerateBinary(ctx context.Context, cfg mcq.BinaryConfig) (*mcq.QuestionSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeBinary)

	g.logger.Info("generating binary questions",
		zap.String("topic", cfg.Topic()),
		zap.String("type", string(cfg.Kind)),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("count", cfg.NumQuestions),
	)

	text, err := g.complete(ctx, BuildBinaryPrompt(cfg), cfg.MaxTokens)
	if err != nil {
		return nil, err
	}

	questions := g.accept(text, Parser{Kind: cfg.Kind}, Input{
		Kind:       cfg.Kind,
		NumOptions: 2,
		NumCorrect: 1,
	}, cfg.NumQuestions)

	return &mcq.QuestionSet{
		Specialization: cfg.Field,
		Subfield:       cfg.Subfield,
		Type:           cfg.Kind,
		GeneratedAt:    g.now(),
		Questions:      questions,
	}, nil
}

// GenerateSimilar produces four-option questions related to req.Question.
func (g *LLMGenerator) GenerateSimilar(ctx context.Context, req SimilarRequest) ([]mcq.Question, error) {
	if err := validateSimilar(req); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSimilar)

	text, err := g.complete(ctx, BuildSimilarPrompt(req, g.config), req.MaxTokens)
	if err != nil {
		return nil, err
	}

	prior := append([]string{req.Question.Text}, req.Avoid...)
	return g.accept(text, Parser{Kind: mcq.TypeMultipleChoice}, Input{
		Kind:           mcq.TypeMultipleChoice,
		NumOptions:     4,
		NumCorrect:     1,
		PriorQuestions: prior,
	}, req.Count), nil
}

// GenerateSimilarText produces open related questions as raw text.
func (g *LLMGenerator) GenerateSimilarText(ctx context.Context, req SimilarRequest) (string, error) {
	if err := validateSimilar(req); err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSimilar)
	return g.complete(ctx, BuildFreeFormSimilarPrompt(req, g.config), req.MaxTokens)
}

func (g *LLMGenerator) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := llm.UserPrompt(prompt, maxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return resp.Text, nil
}

// accept parses text, runs the validator chain on each question and keeps
// at most want of the survivors.
func (g *LLMGenerator) accept(text string, parser Parser, input Input, want int) []mcq.Question {
	res := parser.Parse(text)
	for _, perr := range res.Skipped {
		g.logger.Warn("skipping unparseable question block", zap.Error(perr))
	}

	var accepted []mcq.Question
	for i := range res.Questions {
		q := res.Questions[i]
		if verr := g.validate(&q, input); verr != nil {
			g.logger.Warn("dropping generated question",
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
			)
			continue
		}
		accepted = append(accepted, q)
		input.PriorQuestions = append(input.PriorQuestions, q.Text)
	}

	switch {
	case len(accepted) == 0:
		g.logger.Warn("no questions parsed from LLM response",
			zap.Int("blocks_skipped", len(res.Skipped)),
			zap.Int("response_chars", len(text)),
		)
	case want > 0 && len(accepted) > want:
		accepted = accepted[:want]
	case want > 0 && len(accepted) < want:
		g.logger.Warn("fewer questions than requested",
			zap.Int("requested", want),
			zap.Int("parsed", len(accepted)),
		)
	}
	return accepted
}

// validate runs the validator chain; the first failure wins.
func (g *LLMGenerator) validate(q *mcq.Question, input Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

func validateSimilar(req SimilarRequest) error {
	if req.Count < 1 {
		return &mcq.ValidationError{Field: "count", Message: "must be at least 1"}
	}
	if req.MaxTokens < 100 {
		return &mcq.ValidationError{Field: "max-tokens", Message: "must be at least 100"}
	}
	return nil
}
