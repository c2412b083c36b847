package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// ChoiceList is an answer selector for one question. In multi mode any
// number of options can be toggled, including none; otherwise submitting
// picks the highlighted option.
type ChoiceList struct {
	Question  mcq.Question
	Multi     bool
	Cursor    int
	Chosen    []string
	Submitted bool
}

// NewChoiceList creates a selector for q. Questions whose answer is not
// exactly one label use multi mode.
func NewChoiceList(q mcq.Question) ChoiceList {
	return ChoiceList{
		Question: q,
		Multi:    q.Correct.IsSentinel() || len(q.Correct.Labels) != 1,
	}
}

// Move shifts the cursor by delta, staying within the options.
func (c *ChoiceList) Move(delta int) {
	if c.Submitted || len(c.Question.Options) == 0 {
		return
	}
	c.Cursor = min(max(c.Cursor+delta, 0), len(c.Question.Options)-1)
}

// Toggle flips the highlighted option in multi mode.
func (c *ChoiceList) Toggle() {
	if c.Submitted || !c.Multi || len(c.Question.Options) == 0 {
		return
	}
	label := c.Question.Options[c.Cursor].Label
	if i := slices.Index(c.Chosen, label); i >= 0 {
		c.Chosen = slices.Delete(c.Chosen, i, i+1)
		return
	}
	c.Chosen = append(c.Chosen, label)
	slices.Sort(c.Chosen)
}

// Submit locks in the answer.
func (c *ChoiceList) Submit() {
	if c.Submitted {
		return
	}
	if !c.Multi && len(c.Question.Options) > 0 {
		c.Chosen = []string{c.Question.Options[c.Cursor].Label}
	}
	c.Submitted = true
}

// IsCorrect reports whether the submitted labels are exactly the correct
// ones. All of the Above needs every option, None of the Above needs none.
func (c ChoiceList) IsCorrect() bool {
	if !c.Submitted {
		return false
	}
	want := c.Question.Correct.Resolve(c.Question.Options.Labels())
	slices.Sort(want)
	return slices.Equal(want, c.Chosen)
}

// View renders the question and its options.
func (c ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(theme.QuestionText.Render(c.Question.Text))
	b.WriteString("\n\n")

	correct := c.Question.Correct.Resolve(c.Question.Options.Labels())
	for i, o := range c.Question.Options {
		prefix := "  "
		if i == c.Cursor && !c.Submitted {
			prefix = "▸ "
		}
		box := ""
		if c.Multi {
			box = "[ ] "
			if slices.Contains(c.Chosen, o.Label) {
				box = "[x] "
			}
		}
		line := fmt.Sprintf("%s%s%s)  %s", prefix, box, o.Label, o.Text)

		chosen := slices.Contains(c.Chosen, o.Label)
		switch {
		case c.Submitted && slices.Contains(correct, o.Label):
			line = theme.Correct.Render(line)
		case c.Submitted && chosen:
			line = theme.Incorrect.Render(line)
		case c.Submitted:
			line = theme.Dimmed.Render(line)
		case i == c.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
