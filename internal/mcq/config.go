package mcq

import (
	"fmt"
	"strings"
)

// MaxOptions is the largest option count that still has a single-letter label.
const MaxOptions = 26

// Difficulty is the requested question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", &ValidationError{
		Field:   "difficulty",
		Message: fmt.Sprintf("must be one of easy, medium, hard (got %q)", s),
	}
}

// Title returns the capitalised form used in prompts, e.g. "Medium".
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// QuestionType distinguishes multiple-choice sets from binary ones.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeYesNo          QuestionType = "yes_no"
)

// ParseQuestionType accepts the stored names plus a few spellings users type.
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiple_choice", "mcq", "":
		return TypeMultipleChoice, nil
	case "true_false", "true-false", "truefalse":
		return TypeTrueFalse, nil
	case "yes_no", "yes-no", "yesno":
		return TypeYesNo, nil
	}
	return "", &ValidationError{
		Field:   "question-type",
		Message: fmt.Sprintf("must be one of true_false, yes_no (got %q)", s),
	}
}

// Binary reports whether questions of this type have a fixed two-option form.
func (t QuestionType) Binary() bool {
	return t == TypeTrueFalse || t == TypeYesNo
}

// BinaryOptions returns the fixed options of a binary type: True/False or
// Yes/No, labelled A and B.
func BinaryOptions(t QuestionType) Options {
	if t == TypeYesNo {
		return Options{{Label: "A", Text: "Yes"}, {Label: "B", Text: "No"}}
	}
	return Options{{Label: "A", Text: "True"}, {Label: "B", Text: "False"}}
}

// BinaryAnswer maps a bare true/false or yes/no word (any case) onto the
// labels of BinaryOptions.
func BinaryAnswer(word string) (Answer, bool) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "true", "yes", "t", "y", "a":
		return LabelAnswer("A"), true
	case "false", "no", "f", "n", "b":
		return LabelAnswer("B"), true
	}
	return Answer{}, false
}

// QuestionConfig is the validated parameter set for one MCQ generation run.
// Build it with NewQuestionConfig; a returned value is never modified.
type QuestionConfig struct {
	Field             string
	Subfield          string
	Difficulty        Difficulty
	NumQuestions      int
	NumOptions        int
	NumCorrectAnswers int
	MaxTokens         int
}

// NewQuestionConfig validates c and returns it with trimmed text fields.
func NewQuestionConfig(c QuestionConfig) (QuestionConfig, error) {
	if err := c.Validate(); err != nil {
		return QuestionConfig{}, err
	}
	c.Field = strings.TrimSpace(c.Field)
	c.Subfield = strings.TrimSpace(c.Subfield)
	c.Difficulty, _ = ParseDifficulty(string(c.Difficulty))
	return c, nil
}

// Validate checks every field constraint and returns the first violation.
func (c QuestionConfig) Validate() error {
	if err := validateTopic(c.Field, c.Subfield); err != nil {
		return err
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if c.NumQuestions < 1 {
		return &ValidationError{Field: "count", Message: "must be at least 1"}
	}
	if c.NumOptions < 2 {
		return &ValidationError{Field: "options", Message: "must be at least 2"}
	}
	if c.NumOptions > MaxOptions {
		return &ValidationError{Field: "options", Message: fmt.Sprintf("must be at most %d", MaxOptions)}
	}
	if c.NumCorrectAnswers < 0 {
		return &ValidationError{Field: "correct-answers", Message: "cannot be negative"}
	}
	if c.NumCorrectAnswers > c.NumOptions {
		return &ValidationError{
			Field:   "correct-answers",
			Message: fmt.Sprintf("%d exceeds the number of options (%d)", c.NumCorrectAnswers, c.NumOptions),
		}
	}
	return validateMaxTokens(c.MaxTokens)
}

// Topic joins field and subfield the way prompts and headers show them.
func (c QuestionConfig) Topic() string {
	return topic(c.Field, c.Subfield)
}

// Labels returns the option labels every generated question must carry.
func (c QuestionConfig) Labels() []string {
	return Labels(c.NumOptions)
}

// BinaryConfig is the validated parameter set for a true/false or yes/no run.
type BinaryConfig struct {
	Field        string
	Subfield     string
	Difficulty   Difficulty
	NumQuestions int
	Kind         QuestionType
	MaxTokens    int
}

// NewBinaryConfig validates c and returns it with trimmed text fields.
func NewBinaryConfig(c BinaryConfig) (BinaryConfig, error) {
	if err := c.Validate(); err != nil {
		return BinaryConfig{}, err
	}
	c.Field = strings.TrimSpace(c.Field)
	c.Subfield = strings.TrimSpace(c.Subfield)
	c.Difficulty, _ = ParseDifficulty(string(c.Difficulty))
	return c, nil
}

func (c BinaryConfig) Validate() error {
	if err := validateTopic(c.Field, c.Subfield); err != nil {
		return err
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if c.NumQuestions < 1 {
		return &ValidationError{Field: "count", Message: "must be at least 1"}
	}
	if !c.Kind.Binary() {
		return &ValidationError{Field: "question-type", Message: fmt.Sprintf("%q is not a binary question type", c.Kind)}
	}
	return validateMaxTokens(c.MaxTokens)
}

func (c BinaryConfig) Topic() string {
	return topic(c.Field, c.Subfield)
}

// Labels returns the first n option labels: A, B, C, ...
func Labels(n int) []string {
	n = max(0, min(n, MaxOptions))
	out := make([]string, 0, n)
	for i := range n {
		out = append(out, string(rune('A'+i)))
	}
	return out
}

func validateTopic(field, subfield string) error {
	if strings.TrimSpace(field) == "" {
		return &ValidationError{Field: "specialization", Message: "cannot be empty"}
	}
	if subfield != "" && strings.TrimSpace(subfield) == "" {
		return &ValidationError{Field: "subfield", Message: "cannot be blank"}
	}
	return nil
}

func validateMaxTokens(n int) error {
	if n < 100 {
		return &ValidationError{Field: "max-tokens", Message: "must be at least 100"}
	}
	return nil
}

func topic(field, subfield string) string {
	if subfield == "" {
		return field
	}
	return field + " - " + subfield
}
