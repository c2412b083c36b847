package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
)

const explainSystemPrompt = `You are an expert assistant providing detailed explanations for multiple-choice questions.`

// ExplainPrompt asks for an explanation of why the stored answer is right.
func ExplainPrompt(q mcq.Question) string {
	var b strings.Builder
	if len(q.Options) > 0 {
		fmt.Fprintf(&b, "Explain the following multiple-choice question and why the correct answer is %s in English:\n\n", q.Correct)
	} else {
		fmt.Fprintf(&b, "Explain the following question and why the correct answer is %s in English:\n\n", q.Correct)
	}
	b.WriteString(q.Text)
	b.WriteString("\n\n")
	writeOptions(&b, q.Options)
	b.WriteString("Please provide a detailed explanation, including any background information or context relevant to the question.")
	return b.String()
}

// PrerequisitesPrompt asks for beginner-level background material.
func PrerequisitesPrompt(q mcq.Question) string {
	subject := "question"
	if len(q.Options) > 0 {
		subject = "question and its options"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide detailed background material that would help a student understand the following %s.\n", subject)
	fmt.Fprintf(&b, "The material should cover fundamental concepts, definitions, and any necessary background knowledge related to the %s.\n\n", subject)
	fmt.Fprintf(&b, "Question: %s\n\n", q.Text)
	writeOptions(&b, q.Options)
	b.WriteString("The explanation should be detailed, yet clear and beginner-friendly, aimed at a student who is not familiar with the topic.")
	return b.String()
}

// TranslatePrompt asks for text in language. The reply is used verbatim,
// so the prompt asks for the translation alone.
func TranslatePrompt(text, language string) string {
	return fmt.Sprintf("Translate the following text to %s:\n\n%s\n\nRespond with the translation only.", language, text)
}

func writeOptions(b *strings.Builder, opts mcq.Options) {
	if len(opts) == 0 {
		return
	}
	for _, o := range opts {
		fmt.Fprintf(b, "%s. %s\n", o.Label, o.Text)
	}
	b.WriteString("\n")
}
