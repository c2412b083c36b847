package problemgen

import "github.com/abhisek/mcqgen/internal/mcq"

// Input describes what a batch was asked for. Validators use it to judge
// each parsed question against the request.
type Input struct {
	// Kind is the question type requested.
	Kind mcq.QuestionType

	// NumOptions is the required option count. Zero skips the check.
	NumOptions int

	// NumCorrect is the configured correct-answer count, or -1 when the
	// request did not fix one (similar questions).
	NumCorrect int

	// PriorQuestions holds the text of questions already accepted in this
	// batch or already present in the source set.
	PriorQuestions []string
}

// SimilarRequest asks for questions that build on an existing one.
type SimilarRequest struct {
	// Question is the source question.
	Question mcq.Question

	// Count is how many new questions to produce.
	Count int

	// MaxTokens is the response token budget.
	MaxTokens int

	// Avoid lists question texts the new ones must not repeat, typically
	// the rest of the source set.
	Avoid []string
}

// Result is the outcome of parsing one LLM response.
type Result struct {
	// Questions holds the blocks that parsed into valid questions, in
	// response order.
	Questions []mcq.Question

	// Skipped holds one error per block that could not be parsed.
	Skipped []*mcq.ParseError
}
