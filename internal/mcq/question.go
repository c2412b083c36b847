package mcq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Option is one labelled answer choice.
type Option struct {
	Label string
	Text  string
}

// Options is the ordered option list of a question.
type Options []Option

// Labels returns the option labels in order.
func (o Options) Labels() []string {
	out := make([]string, len(o))
	for i, opt := range o {
		out[i] = opt.Label
	}
	return out
}

// Text returns the text of the option with the given label.
func (o Options) Text(label string) (string, bool) {
	for _, opt := range o {
		if opt.Label == label {
			return opt.Text, true
		}
	}
	return "", false
}

// MarshalJSON writes options as an object whose keys keep label order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(opt.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var listLabelPrefix = regexp.MustCompile(`^\(?([A-Za-z])[.)]\s+`)

// UnmarshalJSON reads either a label→text object (keeping document order)
// or a plain list of strings, which is labelled A, B, C... in order.
func (o *Options) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		labels := Labels(len(list))
		if len(labels) < len(list) {
			return fmt.Errorf("options: more than %d entries", MaxOptions)
		}
		out := make(Options, len(list))
		for i, text := range list {
			text = strings.TrimSpace(text)
			if m := listLabelPrefix.FindStringSubmatch(text); m != nil && strings.EqualFold(m[1], labels[i]) {
				text = text[len(m[0]):]
			}
			out[i] = Option{Label: labels[i], Text: text}
		}
		*o = out
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("options must be an object or a list")
	}
	var out Options
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("options: %w", err)
		}
		label, _ := tok.(string)
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("option %q: %w", label, err)
		}
		out = append(out, Option{Label: strings.ToUpper(strings.TrimSpace(label)), Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	*o = out
	return nil
}

// Question is one generated question. Values are never modified after
// creation; translation builds new ones.
type Question struct {
	Text        string  `json:"question"`
	Options     Options `json:"options"`
	Correct     Answer  `json:"correct_answer"`
	Explanation string  `json:"explanation,omitempty"`
}

// Validate checks the question invariants: non-empty text, at least two
// options labelled A, B, C... in order with non-empty text, and a correct
// answer drawn from those labels.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("expected at least 2 options, got %d", len(q.Options))
	}
	if want, got := Labels(len(q.Options)), q.Options.Labels(); !slices.Equal(want, got) {
		return fmt.Errorf("option labels %v, want %v", got, want)
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("option %s is empty", opt.Label)
		}
	}
	if q.Correct.IsZero() {
		return fmt.Errorf("no correct answer")
	}
	for _, l := range q.Correct.Labels {
		if _, ok := q.Options.Text(l); !ok {
			return fmt.Errorf("correct answer %q is not an option label", l)
		}
	}
	return nil
}

// Equal compares two questions by value.
func (q Question) Equal(other Question) bool {
	return q.Text == other.Text &&
		slices.Equal(q.Options, other.Options) &&
		q.Correct.Equal(other.Correct) &&
		q.Explanation == other.Explanation
}

// QuestionSet is a batch of questions written and loaded as one file.
type QuestionSet struct {
	Specialization string
	Subfield       string
	Type           QuestionType
	Language       string // Empty for untranslated (English) sets
	GeneratedAt    time.Time
	Questions      []Question
}

// Question returns the 1-based nth question.
func (s *QuestionSet) Question(n int) (Question, error) {
	if n < 1 || n > len(s.Questions) {
		return Question{}, &ValidationError{
			Field:   "question-num",
			Message: fmt.Sprintf("must be between 1 and %d", len(s.Questions)),
		}
	}
	return s.Questions[n-1], nil
}

// Topic joins specialization and subfield.
func (s *QuestionSet) Topic() string {
	return topic(s.Specialization, s.Subfield)
}
