// Package present renders question sets and command output for the
// terminal.
package present

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/ui/components"
	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// Presenter writes styled output to W. With Plain set no escape sequences
// are written.
type Presenter struct {
	W     io.Writer
	Plain bool
}

// New returns a presenter for w. Colors are downsampled to what the
// terminal supports and dropped entirely when w is not a terminal.
func New(w io.Writer, noColor bool) *Presenter {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return &Presenter{W: w, Plain: true}
	}
	return &Presenter{W: colorprofile.NewWriter(w, os.Environ())}
}

func (p *Presenter) render(s lipgloss.Style, text string) string {
	if p.Plain {
		return text
	}
	return s.Render(text)
}

func (p *Presenter) println(parts ...string) {
	fmt.Fprintln(p.W, strings.Join(parts, ""))
}

// Status announces a long-running step.
func (p *Presenter) Status(format string, args ...any) {
	p.println("\n", p.render(theme.Subtitle, "» "+fmt.Sprintf(format, args...)))
}

// Success reports a completed step.
func (p *Presenter) Success(format string, args ...any) {
	p.println(p.render(theme.Correct, "✓ "), fmt.Sprintf(format, args...))
}

// Warn reports something the user should know about but that did not fail.
func (p *Presenter) Warn(format string, args ...any) {
	p.println(p.render(theme.Warning, "! "+fmt.Sprintf(format, args...)))
}

// SetSummary prints where a set came from and what it holds.
func (p *Presenter) SetSummary(set *mcq.QuestionSet, source string) {
	rows := [][2]string{}
	if source != "" {
		rows = append(rows, [2]string{"Loaded from", source})
	}
	rows = append(rows, [2]string{"Specialization", set.Topic()})
	if set.Type.Binary() {
		rows = append(rows, [2]string{"Question type", strings.ReplaceAll(string(set.Type), "_", "/")})
	}
	if set.Language != "" {
		rows = append(rows, [2]string{"Language", set.Language})
	}
	if !set.GeneratedAt.IsZero() {
		rows = append(rows, [2]string{"Generated at", set.GeneratedAt.Format(time.DateTime)})
	}
	rows = append(rows, [2]string{"Questions", fmt.Sprint(len(set.Questions))})

	p.println()
	p.Table(rows)
	p.println()
}

// Table prints aligned key/value rows.
func (p *Presenter) Table(rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		key := fmt.Sprintf("%-*s", width+1, r[0]+":")
		p.println(p.render(theme.OptionLabel, key), " ", r[1])
	}
}

// Questions prints every question of set.
func (p *Presenter) Questions(set *mcq.QuestionSet, showAnswers bool) {
	if len(set.Questions) == 0 {
		p.println("No questions to display.")
		return
	}
	binary := set.Type.Binary()
	for i, q := range set.Questions {
		p.Question(i+1, q, binary, showAnswers)
	}
}

// Question prints the nth question. Binary questions show no option list.
func (p *Presenter) Question(n int, q mcq.Question, binary, showAnswers bool) {
	p.println(p.render(theme.QuestionNumber, fmt.Sprintf("Question %d:", n)))
	p.println(p.render(theme.QuestionText, q.Text))

	if !binary {
		p.println()
		for _, o := range q.Options {
			p.println("  ", p.render(theme.OptionLabel, o.Label+"."), " ", o.Text)
		}
	}

	if showAnswers {
		p.println()
		p.println(p.render(theme.Answer, "✓ Correct Answer: "+AnswerText(q, binary)))
		if q.Explanation != "" {
			p.println(p.render(theme.Explanation, "Explanation: "+q.Explanation))
		}
	}
	p.println()
}

// AnswerText formats the correct answer of q: the option text for binary
// questions, the labels or sentinel otherwise.
func AnswerText(q mcq.Question, binary bool) string {
	if binary && len(q.Correct.Labels) == 1 {
		if text, ok := q.Options.Text(q.Correct.Labels[0]); ok {
			return text
		}
	}
	return q.Correct.String()
}

// Section prints a titled block of free text such as an explanation.
func (p *Presenter) Section(title, body string) {
	p.println(p.render(theme.Title, title))
	p.println()
	p.println(strings.TrimSpace(body))
	p.println()
}

// Progress redraws a single-line progress indicator. Call Done when the
// work is finished.
func (p *Presenter) Progress(label string, done, total int) {
	if total <= 0 {
		return
	}
	if p.Plain {
		fmt.Fprintf(p.W, "\r  %s %d/%d...", label, done, total)
		return
	}
	bar := components.NewProgressBar(fmt.Sprintf("%s %d/%d", label, done, total), float64(done)/float64(total), true, 60)
	fmt.Fprint(p.W, "\r"+bar.View())
}

// Done ends a progress line.
func (p *Presenter) Done() {
	p.println()
}
