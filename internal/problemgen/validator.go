package problemgen

import (
	"fmt"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// Validator checks a parsed question against the batch request.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "option-count", "dedup".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *mcq.Question, input Input) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
