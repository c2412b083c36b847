package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// DedupValidator rejects a question whose text repeats one already in the
// batch or in the source set. Comparison ignores case, spacing and
// trailing punctuation.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(q *mcq.Question, input Input) *ValidationError {
	key := normalizeText(q.Text)
	for _, prior := range input.PriorQuestions {
		if normalizeText(prior) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate question %q", q.Text),
			}
		}
	}
	return nil
}

func normalizeText(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimRight(s, "?.!:; ")
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
