// Package practice is an interactive quiz over a stored question set.
package practice

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/present"
	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/layout"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// Model walks the questions of a set one at a time.
type Model struct {
	set     *mcq.QuestionSet
	index   int
	choice  components.ChoiceList
	results []bool

	keys keyMap
	help help.Model

	width    int
	height   int
	finished bool
}

// New creates a practice model for set.
func New(set *mcq.QuestionSet) Model {
	m := Model{
		set:  set,
		keys: defaultKeyMap(),
		help: help.New(),
	}
	if len(set.Questions) == 0 {
		m.finished = true
	} else {
		m.choice = components.NewChoiceList(set.Questions[0])
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Summary: enter leaves.
	if m.finished {
		if key.Matches(msg, m.keys.Submit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Feedback: enter moves on.
	if m.choice.Submitted {
		if key.Matches(msg, m.keys.Submit) {
			m.next()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.choice.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.choice.Move(1)
	case key.Matches(msg, m.keys.Toggle):
		m.choice.Toggle()
	case key.Matches(msg, m.keys.Submit):
		m.choice.Submit()
		m.results = append(m.results, m.choice.IsCorrect())
	}
	return m, nil
}

func (m *Model) next() {
	m.index++
	if m.index >= len(m.set.Questions) {
		m.finished = true
		return
	}
	m.choice = components.NewChoiceList(m.set.Questions[m.index])
}

// Score returns the number of correct answers and the number answered.
func (m Model) Score() (correct, answered int) {
	for _, ok := range m.results {
		if ok {
			correct++
		}
	}
	return correct, len(m.results)
}

// Finished reports whether every question has been answered.
func (m Model) Finished() bool {
	return m.finished
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	if layout.IsTooSmall(width, height) {
		return layout.RenderMinSizeMessage(width, height)
	}

	correct, answered := m.Score()
	status := fmt.Sprintf("Score %d/%d", correct, answered)
	if !m.finished {
		status = fmt.Sprintf("Question %d of %d   %s", m.index+1, len(m.set.Questions), status)
	}
	header := layout.RenderHeader(m.set.Topic(), status, width)

	var content string
	if m.finished {
		content = m.summaryView()
	} else {
		content = m.questionView()
	}

	footer := "  " + m.help.View(m.keys)
	return layout.RenderFrame(header, content, footer, width, height)
}

func (m Model) questionView() string {
	var b strings.Builder
	if m.choice.Multi && !m.choice.Submitted {
		b.WriteString(theme.Hint.Render("Select every correct option, or none, then press enter."))
		b.WriteString("\n\n")
	}
	b.WriteString(m.choice.View())

	if m.choice.Submitted {
		b.WriteString("\n")
		q := m.choice.Question
		if m.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite. Correct answer: " + present.AnswerText(q, m.set.Type.Binary())))
		}
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Explanation.Render(q.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press enter to continue."))
	}
	return b.String()
}

func (m Model) summaryView() string {
	correct, answered := m.Score()
	if answered == 0 {
		return theme.Subtitle.Render("No questions answered.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("You scored %d out of %d (%d%%).", correct, answered, correct*100/answered))
	b.WriteString("\n\n")
	bar := components.NewProgressBar("Accuracy", float64(correct)/float64(answered), true, 50)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press enter to exit."))
	return b.String()
}

// Run starts the quiz and returns the final model state.
func Run(set *mcq.QuestionSet) (Model, error) {
	p := tea.NewProgram(New(set))
	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("practice: %w", err)
	}
	return final.(Model), nil
}
