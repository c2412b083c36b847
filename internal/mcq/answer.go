package mcq

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Sentinel is a whole-question answer that is not a list of labels.
type Sentinel string

const (
	AllOfTheAbove  Sentinel = "All of the Above"
	NoneOfTheAbove Sentinel = "None of the Above"
)

// Answer is the correct answer of a question: either a sorted set of
// option labels or exactly one sentinel.
type Answer struct {
	Labels   []string
	Sentinel Sentinel
}

// LabelAnswer builds an answer from option labels. Labels are upper-cased,
// de-duplicated and sorted.
func LabelAnswer(labels ...string) Answer {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return Answer{Labels: slices.Compact(out)}
}

// SentinelAnswer builds an All/None of the Above answer.
func SentinelAnswer(s Sentinel) Answer {
	return Answer{Sentinel: s}
}

// IsSentinel reports whether a is All or None of the Above.
func (a Answer) IsSentinel() bool { return a.Sentinel != "" }

// IsZero reports whether a carries neither labels nor a sentinel.
func (a Answer) IsZero() bool { return a.Sentinel == "" && len(a.Labels) == 0 }

// Contains reports whether label is one of the answer labels.
func (a Answer) Contains(label string) bool {
	return slices.Contains(a.Labels, strings.ToUpper(label))
}

// Resolve expands the answer against the question's option labels:
// All of the Above selects every label, None of the Above selects none.
func (a Answer) Resolve(labels []string) []string {
	switch a.Sentinel {
	case AllOfTheAbove:
		return slices.Clone(labels)
	case NoneOfTheAbove:
		return nil
	}
	return slices.Clone(a.Labels)
}

// Equal compares two answers by value.
func (a Answer) Equal(b Answer) bool {
	return a.Sentinel == b.Sentinel && slices.Equal(a.Labels, b.Labels)
}

// Strings returns the stored list form: the labels, or a one-element
// list holding the sentinel text.
func (a Answer) Strings() []string {
	if a.IsSentinel() {
		return []string{string(a.Sentinel)}
	}
	return slices.Clone(a.Labels)
}

func (a Answer) String() string {
	return strings.Join(a.Strings(), ", ")
}

func (a Answer) MarshalJSON() ([]byte, error) {
	s := a.Strings()
	if s == nil {
		s = []string{}
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts a list of labels or sentinel text, and also a
// bare string such as "B" or "A, C".
func (a *Answer) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		var single string
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return fmt.Errorf("correct_answer must be a string or list of strings: %w", err)
		}
		list = []string{single}
	}

	if len(list) == 1 {
		if s, ok := MatchSentinel(list[0]); ok {
			*a = SentinelAnswer(s)
			return nil
		}
		list = SplitLabels(list[0])
	}
	for _, item := range list {
		if _, ok := MatchSentinel(item); ok {
			return fmt.Errorf("sentinel %q cannot be combined with other answers", item)
		}
	}
	*a = LabelAnswer(list...)
	return nil
}

// MatchSentinel recognises "All of the Above" and "None of the Above"
// (and the shorter "all of above" / "none of above") in any case.
func MatchSentinel(s string) (Sentinel, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "all of the above", "all of above":
		return AllOfTheAbove, true
	case "none of the above", "none of above":
		return NoneOfTheAbove, true
	}
	return "", false
}

// SplitLabels splits "A, C", "A and C", "A & C" or "A+C" into separate
// items.
func SplitLabels(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ';', '/', '&', '+':
			return true
		}
		return false
	})
	var out []string
	for _, f := range fields {
		for _, part := range strings.Split(strings.ReplaceAll(strings.ToLower(f), " and ", ","), ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
