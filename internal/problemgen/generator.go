package problemgen

import (
	"context"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// Generator produces question sets using an LLM provider.
type Generator interface {
	// Generate produces a multiple-choice set for cfg. A response with no
	// usable questions yields an empty set and a nil error.
	Generate(ctx context.Context, cfg mcq.QuestionConfig) (*mcq.QuestionSet, error)

	// GenerateBinary produces a true/false or yes/no set for cfg.
	GenerateBinary(ctx context.Context, cfg mcq.BinaryConfig) (*mcq.QuestionSet, error)

	// GenerateSimilar produces four-option questions related to req.Question.
	GenerateSimilar(ctx context.Context, req SimilarRequest) ([]mcq.Question, error)

	// GenerateSimilarText produces open related questions as raw text.
	GenerateSimilarText(ctx context.Context, req SimilarRequest) (string, error)
}
