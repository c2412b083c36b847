package problemgen

import (
	"fmt"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// StructuralValidator checks the question invariants: text present,
// options labelled A, B, C... in order, and a correct answer drawn from
// those labels.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *mcq.Question, _ Input) *ValidationError {
	if err := q.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}

// OptionCountValidator checks that the question has exactly the number of
// options requested.
type OptionCountValidator struct{}

func (v *OptionCountValidator) Name() string { return "option-count" }

func (v *OptionCountValidator) Validate(q *mcq.Question, input Input) *ValidationError {
	if input.NumOptions > 0 && len(q.Options) != input.NumOptions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", input.NumOptions, len(q.Options)),
		}
	}
	return nil
}

// AnswerCountValidator rejects multi-answer responses to a single-answer
// request. Other counts are left alone because models legitimately fold
// several correct options into a sentinel.
type AnswerCountValidator struct{}

func (v *AnswerCountValidator) Name() string { return "answer-count" }

func (v *AnswerCountValidator) Validate(q *mcq.Question, input Input) *ValidationError {
	if input.Kind.Binary() || input.NumCorrect != 1 {
		return nil
	}
	if len(q.Correct.Labels) > 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected a single correct answer, got %s", q.Correct),
		}
	}
	return nil
}
