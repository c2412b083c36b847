package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators run on every parsed
	// question. The first failure drops the question from the batch.
	Validators []Validator

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions caps how many existing questions the similar
	// prompt lists as ones not to repeat.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionCountValidator{},
			&AnswerCountValidator{},
			&DedupValidator{},
		},
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}
