package problemgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
)

var (
	// "Question:", "Question 3:", "**Question 3:**", "3. Question:"
	questionLine = regexp.MustCompile(`(?i)^[\s#*]*(?:\d+[.)]\s*)?question\s*\d*[\s*]*[:.)-][\s*]*(.*)$`)

	// "A. text", "A) text", "(A) text", "**A.** text"
	optionLine = regexp.MustCompile(`^[\s*]*\(?([A-Z])[.)][\s*]*(.*)$`)

	// "Answer: B", "Correct Answer: A, C", "**Correct Answer(s):** ..."
	answerLine = regexp.MustCompile(`(?i)^[\s*]*(?:correct\s+)?answers?[\s*]*(?:\([^)]*\))?[\s*]*[:-][\s*]*(.*)$`)

	explanationLine = regexp.MustCompile(`(?i)^[\s*]*(?:explanation|rationale)[\s*]*[:-][\s*]*(.*)$`)
)

type blockState int

const (
	inText blockState = iota
	inOptions
	inAnswer
	inExplanation
	done
)

// block collects the raw pieces of one question before conversion.
type block struct {
	index       int
	text        []string
	options     mcq.Options
	answer      string
	hasAnswer   bool
	explanation []string
}

// Parser extracts questions from free-text LLM output.
type Parser struct {
	// Kind selects multiple-choice or binary parsing.
	Kind mcq.QuestionType

	// Source names the input in parse errors. Defaults to "LLM response".
	Source string

	// BareNone reads a lone "Answer: None" as None of the Above. Set it
	// when the request asked for zero correct answers.
	BareNone bool
}

// Parse splits raw into question blocks at "Question:" marker lines and
// converts each block. Text before the first marker is ignored. Blocks
// that fail to convert or violate the question invariants are reported in
// Result.Skipped. A response without any marker yields an empty Result.
func (p Parser) Parse(raw string) Result {
	var res Result
	for _, b := range splitBlocks(raw) {
		q, err := p.convert(b)
		if err != nil {
			res.Skipped = append(res.Skipped, &mcq.ParseError{
				Source: p.source(),
				Block:  b.index,
				Reason: "invalid question block",
				Err:    err,
			})
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

func (p Parser) source() string {
	if p.Source == "" {
		return "LLM response"
	}
	return p.Source
}

func splitBlocks(raw string) []*block {
	var blocks []*block
	var cur *block
	state := inText

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)

		if m := questionLine.FindStringSubmatch(trimmed); m != nil {
			cur = &block{index: len(blocks) + 1}
			blocks = append(blocks, cur)
			cur.text = appendNonEmpty(cur.text, m[1])
			state = inText
			continue
		}
		if cur == nil || state == done {
			continue
		}
		if trimmed == "" {
			if state == inExplanation {
				state = done
			}
			continue
		}
		if m := answerLine.FindStringSubmatch(trimmed); m != nil {
			cur.answer = cleanField(m[1])
			cur.hasAnswer = true
			state = inAnswer
			continue
		}
		if m := explanationLine.FindStringSubmatch(trimmed); m != nil {
			cur.explanation = appendNonEmpty(cur.explanation, m[1])
			state = inExplanation
			continue
		}
		// Options start at A and follow in order; "I." or "II." statement
		// lines stay in the question text.
		if state == inText || state == inOptions {
			if m := optionLine.FindStringSubmatch(trimmed); m != nil && m[1] == nextLabel(cur.options) {
				cur.options = append(cur.options, mcq.Option{Label: m[1], Text: cleanField(m[2])})
				state = inOptions
				continue
			}
		}

		switch state {
		case inText:
			cur.text = appendNonEmpty(cur.text, trimmed)
		case inOptions:
			last := &cur.options[len(cur.options)-1]
			last.Text = strings.TrimSpace(last.Text + " " + cleanField(trimmed))
		case inAnswer:
			// "Correct Answer:" with the value on the next line.
			if cur.answer == "" {
				cur.answer = cleanField(trimmed)
			}
		case inExplanation:
			cur.explanation = appendNonEmpty(cur.explanation, trimmed)
		}
	}
	return blocks
}

func nextLabel(opts mcq.Options) string {
	return string(rune('A' + len(opts)))
}

func (p Parser) convert(b *block) (mcq.Question, error) {
	q := mcq.Question{
		Text:        strings.Join(b.text, " "),
		Explanation: strings.Join(b.explanation, " "),
	}
	if q.Text == "" {
		return q, fmt.Errorf("missing question text")
	}
	if !b.hasAnswer {
		return q, fmt.Errorf("missing answer line")
	}

	var err error
	if p.Kind.Binary() {
		q.Options = mcq.BinaryOptions(p.Kind)
		q.Correct, err = ParseBinaryAnswer(b.answer)
	} else {
		q.Options = b.options
		q.Correct, err = parseAnswer(b.answer, p.BareNone)
	}
	if err != nil {
		return q, err
	}
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*"))
}

func appendNonEmpty(parts []string, s string) []string {
	if s = cleanField(s); s != "" {
		return append(parts, s)
	}
	return parts
}
