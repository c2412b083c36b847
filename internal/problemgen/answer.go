package problemgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
)

// answerLabel matches an answer item that is an option label, optionally
// followed by the option text after ".", ")" or ":", e.g. "b", "(c)",
// "d. paris", "option a". "a c" does not match.
var answerLabel = regexp.MustCompile(`^(?:option\s+)?\(?([a-z])\)?(?:[.):].*)?$`)

// ParseAnswer turns the text after "Answer:" into an mcq.Answer. It accepts
// a single label ("B"), comma or "and" joined labels ("A, C", "A and C"),
// bracketed or quoted lists ("['A', 'C']") and the All/None of the Above
// sentinels in any case.
func ParseAnswer(raw string) (mcq.Answer, error) {
	return parseAnswer(raw, false)
}

// parseAnswer is ParseAnswer; bareNone also reads a lone "None" as None of
// the Above.
func parseAnswer(raw string, bareNone bool) (mcq.Answer, error) {
	s := trimDecoration(raw)
	if s == "" {
		return mcq.Answer{}, fmt.Errorf("empty answer")
	}
	if sentinel, ok := mcq.MatchSentinel(s); ok {
		return mcq.SentinelAnswer(sentinel), nil
	}
	if bareNone && strings.EqualFold(s, "none") {
		return mcq.SentinelAnswer(mcq.NoneOfTheAbove), nil
	}

	var labels []string
	var sentinel mcq.Sentinel
	for _, item := range mcq.SplitLabels(s) {
		item = trimDecoration(item)
		if item == "" {
			continue
		}
		if sen, ok := mcq.MatchSentinel(item); ok {
			sentinel = sen
			continue
		}
		m := answerLabel.FindStringSubmatch(item)
		if m == nil {
			return mcq.Answer{}, fmt.Errorf("unrecognised answer %q", item)
		}
		labels = append(labels, strings.ToUpper(m[1]))
	}

	switch {
	case sentinel != "" && len(labels) > 0:
		return mcq.Answer{}, fmt.Errorf("answer %q mixes %q with option labels", raw, sentinel)
	case sentinel != "":
		return mcq.SentinelAnswer(sentinel), nil
	case len(labels) == 0:
		return mcq.Answer{}, fmt.Errorf("empty answer")
	}
	return mcq.LabelAnswer(labels...), nil
}

// ParseBinaryAnswer maps True/Yes to label A and False/No to label B.
// Only the first word counts, so "No, because..." reads as No.
func ParseBinaryAnswer(raw string) (mcq.Answer, error) {
	word := strings.ToLower(trimDecoration(raw))
	if fields := strings.Fields(word); len(fields) > 0 {
		word = strings.Trim(fields[0], ",.;:!-")
	}
	if a, ok := mcq.BinaryAnswer(word); ok {
		return a, nil
	}
	return mcq.Answer{}, fmt.Errorf("expected a true/false or yes/no answer, got %q", raw)
}

// trimDecoration strips markdown emphasis, brackets, quotes and trailing
// punctuation that models wrap around answers.
func trimDecoration(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "`", "")
	return strings.Trim(strings.TrimSpace(s), "[]{}'\" .*")
}
