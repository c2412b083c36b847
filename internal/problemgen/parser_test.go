package problemgen

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/mcqgen/internal/mcq"
)

const threeQuestions = `Here are your questions:

Question: What is the SI unit of force?
A. Joule
B. Newton
C. Watt
D. Pascal
Correct Answer: B

Question: Which of these are noble gases?
A. Helium
B. Nitrogen
C. Argon
D. Oxygen
Correct Answer: A, C

Question: Which statements about light are true?
A. It travels as a wave
B. It carries energy
C. It can be reflected
D. It can be refracted
Correct Answer: All of the Above
`

func TestParse_ThreeBlocks(t *testing.T) {
	res := Parser{Kind: mcq.TypeMultipleChoice}.Parse(threeQuestions)

	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", res.Skipped)
	}
	if len(res.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(res.Questions))
	}
	for i, q := range res.Questions {
		if got := q.Options.Labels(); !slices.Equal(got, []string{"A", "B", "C", "D"}) {
			t.Errorf("question %d labels = %v", i+1, got)
		}
	}

	q := res.Questions[0]
	if q.Text != "What is the SI unit of force?" {
		t.Errorf("unexpected text %q", q.Text)
	}
	if text, _ := q.Options.Text("B"); text != "Newton" {
		t.Errorf("option B = %q", text)
	}
	if !res.Questions[0].Correct.Equal(mcq.LabelAnswer("B")) {
		t.Errorf("q1 answer = %v", res.Questions[0].Correct)
	}
	if !res.Questions[1].Correct.Equal(mcq.LabelAnswer("A", "C")) {
		t.Errorf("q2 answer = %v", res.Questions[1].Correct)
	}
	if !res.Questions[2].Correct.Equal(mcq.SentinelAnswer(mcq.AllOfTheAbove)) {
		t.Errorf("q3 answer = %v", res.Questions[2].Correct)
	}
}

func TestParse_EmptyResponse(t *testing.T) {
	for _, input := range []string{"", "   \n\n", "I cannot help with that request."} {
		res := Parser{}.Parse(input)
		if len(res.Questions) != 0 || len(res.Skipped) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", input, res)
		}
	}
}

func TestParse_MarkdownAndNumbering(t *testing.T) {
	raw := "**Question 1:** What is the capital of France?\n" +
		"**A.** Berlin\n" +
		"**B.** Paris\n" +
		"**C.** Rome\n" +
		"**D.** Madrid\n" +
		"**Correct Answer:** [B]\n\n" +
		"2. Question: Which planet is largest?\n" +
		"(A) Earth\n" +
		"(B) Jupiter\n" +
		"(C) Mars\n" +
		"(D) Venus\n" +
		"Correct Answer:\n" +
		"B\n"

	res := Parser{}.Parse(raw)
	if len(res.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	if res.Questions[0].Text != "What is the capital of France?" {
		t.Errorf("unexpected text %q", res.Questions[0].Text)
	}
	if text, _ := res.Questions[0].Options.Text("A"); text != "Berlin" {
		t.Errorf("option A = %q", text)
	}
	if !res.Questions[1].Correct.Equal(mcq.LabelAnswer("B")) {
		t.Errorf("answer on following line not read: %v", res.Questions[1].Correct)
	}
}

func TestParse_MultilineTextAndOptions(t *testing.T) {
	raw := `Question: Consider the reaction below.
Which product forms first?
A) Water
   vapour
B) Carbon dioxide
C) Oxygen
D) Hydrogen
Answer: a
Rationale: this line is ignored for answer parsing`

	res := Parser{}.Parse(raw)
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	q := res.Questions[0]
	if q.Text != "Consider the reaction below. Which product forms first?" {
		t.Errorf("unexpected text %q", q.Text)
	}
	if text, _ := q.Options.Text("A"); text != "Water vapour" {
		t.Errorf("continuation not joined: %q", text)
	}
	if q.Explanation != "this line is ignored for answer parsing" {
		t.Errorf("unexpected explanation %q", q.Explanation)
	}
}

func TestParse_SkipsBrokenBlocks(t *testing.T) {
	raw := `Question: Missing an answer line
A. one
B. two

Question: Answer is not an option
A. one
B. two
Correct Answer: E

Question: Fine
A. one
B. two
Correct Answer: A`

	res := Parser{Source: "test"}.Parse(raw)
	if len(res.Questions) != 1 || res.Questions[0].Text != "Fine" {
		t.Fatalf("expected only the valid block, got %+v", res.Questions)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("expected 2 skipped blocks, got %d", len(res.Skipped))
	}
	if res.Skipped[0].Block != 1 || res.Skipped[1].Block != 2 {
		t.Errorf("unexpected block numbers: %d, %d", res.Skipped[0].Block, res.Skipped[1].Block)
	}
	var perr *mcq.ParseError
	if !errors.As(res.Skipped[0], &perr) || perr.Source != "test" {
		t.Errorf("unexpected parse error: %v", res.Skipped[0])
	}
}

func TestParse_StatementLinesStayInText(t *testing.T) {
	raw := `Question: Which statements are true?
I. Light is a wave.
II. Light carries energy.
A. I only
B. II only
C. Both I and II
D. Neither
Correct Answer: C`

	res := Parser{}.Parse(raw)
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	q := res.Questions[0]
	if !strings.Contains(q.Text, "I. Light is a wave.") || !strings.Contains(q.Text, "II. Light carries energy.") {
		t.Errorf("statements missing from text: %q", q.Text)
	}
	if got := q.Options.Labels(); !slices.Equal(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("unexpected labels %v", got)
	}
	if !q.Correct.Equal(mcq.LabelAnswer("C")) {
		t.Errorf("unexpected answer %v", q.Correct)
	}
}

func TestParse_OutOfSequenceLabelContinuesOption(t *testing.T) {
	raw := `Question: Pick the noble gas.
A. Neon
B. Nitrogen
D. Oxygen
Answer: A`

	res := Parser{}.Parse(raw)
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	if text, _ := res.Questions[0].Options.Text("B"); text != "Nitrogen D. Oxygen" {
		t.Errorf("option B = %q", text)
	}
}

func TestParse_BareNone(t *testing.T) {
	raw := `Question: Which of these is a prime number?
A. 4
B. 6
C. 8
D. 9
Correct Answer: None`

	res := Parser{BareNone: true}.Parse(raw)
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	if !res.Questions[0].Correct.Equal(mcq.SentinelAnswer(mcq.NoneOfTheAbove)) {
		t.Errorf("unexpected answer %v", res.Questions[0].Correct)
	}

	if res := (Parser{}).Parse(raw); len(res.Questions) != 0 || len(res.Skipped) != 1 {
		t.Errorf("bare None accepted without BareNone: %+v", res.Questions)
	}
}

func TestParse_Binary(t *testing.T) {
	raw := `Question: The Earth orbits the Sun.
Answer: True
Explanation: The heliocentric model
is well established.

Some closing remark from the model.

Question: Water boils at 50°C at sea level.
Answer: False
Explanation: It boils at 100°C.`

	res := Parser{Kind: mcq.TypeTrueFalse}.Parse(raw)
	if len(res.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d (skipped %v)", len(res.Questions), res.Skipped)
	}
	q := res.Questions[0]
	if text, _ := q.Options.Text("A"); text != "True" {
		t.Errorf("option A = %q", text)
	}
	if !q.Correct.Equal(mcq.LabelAnswer("A")) {
		t.Errorf("answer = %v", q.Correct)
	}
	if q.Explanation != "The heliocentric model is well established." {
		t.Errorf("unexpected explanation %q", q.Explanation)
	}
	if !res.Questions[1].Correct.Equal(mcq.LabelAnswer("B")) {
		t.Errorf("answer = %v", res.Questions[1].Correct)
	}
}

func TestParse_YesNo(t *testing.T) {
	res := Parser{Kind: mcq.TypeYesNo}.Parse("Question: Is Python compiled to bytecode?\nAnswer: Yes\nExplanation: CPython compiles to bytecode.")
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(res.Questions))
	}
	if text, _ := res.Questions[0].Options.Text("B"); text != "No" {
		t.Errorf("option B = %q", text)
	}
}
