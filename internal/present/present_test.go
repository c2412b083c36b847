package present

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mcqgen/internal/mcq"
)

func plain() (*Presenter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Presenter{W: &buf, Plain: true}, &buf
}

func set() *mcq.QuestionSet {
	return &mcq.QuestionSet{
		Specialization: "Physics",
		Subfield:       "Optics",
		GeneratedAt:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Questions: []mcq.Question{{
			Text: "What bends light?",
			Options: mcq.Options{
				{Label: "A", Text: "Lens"},
				{Label: "B", Text: "Sound"},
			},
			Correct:     mcq.LabelAnswer("A"),
			Explanation: "Refraction.",
		}},
	}
}

func TestQuestions(t *testing.T) {
	p, buf := plain()
	p.Questions(set(), false)

	out := buf.String()
	assert.Contains(t, out, "Question 1:\nWhat bends light?\n\n  A. Lens\n  B. Sound\n")
	assert.NotContains(t, out, "Correct Answer")
	assert.NotContains(t, out, "\x1b[", "plain output has no escapes")
}

func TestQuestions_WithAnswers(t *testing.T) {
	p, buf := plain()
	p.Questions(set(), true)

	out := buf.String()
	assert.Contains(t, out, "✓ Correct Answer: A")
	assert.Contains(t, out, "Explanation: Refraction.")
}

func TestQuestions_Binary(t *testing.T) {
	s := &mcq.QuestionSet{
		Specialization: "Biology",
		Type:           mcq.TypeYesNo,
		Questions: []mcq.Question{{
			Text:    "Do plants photosynthesize?",
			Options: mcq.BinaryOptions(mcq.TypeYesNo),
			Correct: mcq.LabelAnswer("A"),
		}},
	}
	p, buf := plain()
	p.Questions(s, true)

	out := buf.String()
	assert.NotContains(t, out, "A. Yes")
	assert.Contains(t, out, "✓ Correct Answer: Yes")
}

func TestQuestions_Empty(t *testing.T) {
	p, buf := plain()
	p.Questions(&mcq.QuestionSet{}, true)
	assert.Equal(t, "No questions to display.\n", buf.String())
}

func TestAnswerText_Sentinel(t *testing.T) {
	q := set().Questions[0]
	q.Correct = mcq.SentinelAnswer(mcq.AllOfTheAbove)
	assert.Equal(t, "All of the Above", AnswerText(q, false))
}

func TestSetSummary(t *testing.T) {
	s := set()
	s.Language = "hindi"
	p, buf := plain()
	p.SetSummary(s, "physics.json")

	out := buf.String()
	assert.Contains(t, out, "Loaded from:    physics.json")
	assert.Contains(t, out, "Specialization: Physics - Optics")
	assert.Contains(t, out, "Language:       hindi")
	assert.Contains(t, out, "Generated at:   2026-03-01 10:30:00")
}

func TestStyledOutput(t *testing.T) {
	var buf bytes.Buffer
	p := &Presenter{W: &buf}
	p.Success("saved %s", "x.json")
	assert.True(t, strings.HasSuffix(buf.String(), "saved x.json\n"))
}

func TestProgress(t *testing.T) {
	p, buf := plain()
	p.Progress("Translating question", 2, 5)
	p.Done()
	assert.Equal(t, "\r  Translating question 2/5...\n", buf.String())
}
