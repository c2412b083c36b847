package problemgen

import (
	"testing"

	"github.com/abhisek/mcqgen/internal/mcq"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  mcq.Answer
	}{
		{"B", mcq.LabelAnswer("B")},
		{"b", mcq.LabelAnswer("B")},
		{"A, C", mcq.LabelAnswer("A", "C")},
		{"C, A", mcq.LabelAnswer("A", "C")},
		{"A and C", mcq.LabelAnswer("A", "C")},
		{"A,B and D", mcq.LabelAnswer("A", "B", "D")},
		{"[A, C]", mcq.LabelAnswer("A", "C")},
		{"['A', 'C']", mcq.LabelAnswer("A", "C")},
		{"**B**", mcq.LabelAnswer("B")},
		{"B. Paris", mcq.LabelAnswer("B")},
		{"(D)", mcq.LabelAnswer("D")},
		{"Option c", mcq.LabelAnswer("C")},
		{"A & C", mcq.LabelAnswer("A", "C")},
		{"A + C", mcq.LabelAnswer("A", "C")},
		{"A) Water, C) Ice", mcq.LabelAnswer("A", "C")},
		{"All of the Above", mcq.SentinelAnswer(mcq.AllOfTheAbove)},
		{"all of the above", mcq.SentinelAnswer(mcq.AllOfTheAbove)},
		{"ALL OF ABOVE", mcq.SentinelAnswer(mcq.AllOfTheAbove)},
		{"None of the Above", mcq.SentinelAnswer(mcq.NoneOfTheAbove)},
		{"['None of the Above']", mcq.SentinelAnswer(mcq.NoneOfTheAbove)},
		{"none of above.", mcq.SentinelAnswer(mcq.NoneOfTheAbove)},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.input)
		if err != nil {
			t.Errorf("ParseAnswer(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAnswer_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "[]", "the second one", "A, None of the Above", "A C", "B Paris", "None"} {
		if _, err := ParseAnswer(input); err == nil {
			t.Errorf("ParseAnswer(%q) expected error", input)
		}
	}
}

func TestParseBinaryAnswer(t *testing.T) {
	tests := map[string]string{
		"True":         "A",
		"false":        "B",
		"Yes":          "A",
		"NO":           "B",
		"[True]":       "A",
		"**False**":    "B",
		"True.":        "A",
		"No, because.": "B",
	}
	for input, want := range tests {
		got, err := ParseBinaryAnswer(input)
		if err != nil {
			t.Errorf("ParseBinaryAnswer(%q) error: %v", input, err)
			continue
		}
		if !got.Equal(mcq.LabelAnswer(want)) {
			t.Errorf("ParseBinaryAnswer(%q) = %v, want %s", input, got, want)
		}
	}
	if _, err := ParseBinaryAnswer("maybe"); err == nil {
		t.Error("expected error for 'maybe'")
	}
}
