package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mcqgen/internal/mcq"
)

const qualityRules = `QUALITY REQUIREMENTS:
- Cover a wide range of subtopics within the field, including both theoretical concepts and practical real-world applications
- Base each question on factual information verifiable from textbooks, academic papers, or reliable websites
- Use clear language with no room for misinterpretation
- Ensure no cultural, racial, or gender bias; appropriate for diverse audiences
- Each question must be unique (no duplicates)

COMPETITIVE EXAM STANDARDS:
- Match the difficulty level: Easy (recall/simple application), Medium (analysis/application), Hard (critical thinking/synthesis)
- Follow competitive exam format and style
- Align with standard exam syllabus and learning objectives
- Make each question solvable within 1-3 minutes
- Ensure the correct answer is clearly distinguishable from incorrect options
- Create plausible distractors that are logical but definitively wrong
- Distribute questions across different topics to avoid repetition
- Avoid trick questions or misleading wording
- Use current and updated information/examples
- Employ standard technical language consistent with exam conventions
- Avoid or clearly mark negative questions (EXCEPT, NOT, NEVER)
- Avoid double negatives
- Ensure each option is distinct and non-overlapping
- Randomize the position of correct answers (avoid patterns)`

const binaryRules = `QUALITY REQUIREMENTS:
- Cover a wide range of subtopics within %s
- Use clear language with no room for misinterpretation
- Ensure no cultural, racial, or gender bias
- Each question must be unique (no duplicates)
- Match the difficulty level: Easy (recall), Medium (understanding), Hard (critical thinking)`

// BuildMCQPrompt renders the generation prompt for a multiple-choice batch.
// The output depends only on cfg.
func BuildMCQPrompt(cfg mcq.QuestionConfig) string {
	labels := cfg.Labels()
	instruction, answerLine := answerInstruction(cfg.NumCorrectAnswers, labels)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d unambiguous, unbiased, and verifiable multiple-choice questions about %s at a %s difficulty level in English for competitive exams.\n\n",
		cfg.NumQuestions, cfg.Topic(), cfg.Difficulty.Title())
	b.WriteString(qualityRules)
	b.WriteString("\n\nFORMAT:\n")
	fmt.Fprintf(&b, "Each question MUST have exactly %d options (%s), %s.\n",
		cfg.NumOptions, strings.Join(labels, ", "), instruction)
	b.WriteString("Start every question with \"Question:\" and separate questions with a blank line.\n\n")
	b.WriteString("Question: [Question text]\n")
	for _, l := range labels {
		fmt.Fprintf(&b, "%s. [Option %s]\n", l, l)
	}
	b.WriteString(answerLine)
	fmt.Fprintf(&b, "\n\nEach question should be solvable independently and represent diverse aspects of %s.", cfg.Topic())
	return b.String()
}

// answerInstruction returns the sentence describing how many answers are
// correct and the matching "Correct Answer:" template line.
func answerInstruction(numCorrect int, labels []string) (string, string) {
	slash := strings.Join(labels, "/")
	switch {
	case numCorrect == 0:
		return "with 'None of the Above' as the only correct answer",
			"Correct Answer: ['None of the Above']"
	case numCorrect == 1:
		return "with only one correct answer",
			fmt.Sprintf("Correct Answer: [%s]", slash)
	case numCorrect == len(labels):
		return "with 'All of the Above' as the only correct answer",
			"Correct Answer: ['All of the Above']"
	default:
		return fmt.Sprintf("with %d correct answers (can include 'All of the Above' or 'None of the Above')", numCorrect),
			fmt.Sprintf("Correct Answer: [One or more from %s, comma separated, or 'All of the Above', or 'None of the Above']", slash)
	}
}

// BuildBinaryPrompt renders the generation prompt for a true/false or
// yes/no batch.
func BuildBinaryPrompt(cfg mcq.BinaryConfig) string {
	noun, answers := "True/False", "True/False"
	statement := "[True/False statement]"
	verdict := "whether the statement is true or false"
	if cfg.Kind == mcq.TypeYesNo {
		noun, answers = "Yes/No", "Yes/No"
		statement = "[Yes/No question]"
		verdict = "whether the answer is yes or no"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d unique, unambiguous, and unbiased %s questions about %s at a %s difficulty level.\n",
		cfg.NumQuestions, noun, cfg.Topic(), cfg.Difficulty.Title())
	fmt.Fprintf(&b, "Each question should clearly indicate %s, and provide a detailed explanation for the answer.\n\n", verdict)
	fmt.Fprintf(&b, binaryRules, cfg.Topic())
	b.WriteString("\n\nFormat the output strictly as follows, separating questions with a blank line:\n\n")
	fmt.Fprintf(&b, "Question: %s\n", statement)
	fmt.Fprintf(&b, "Answer: [%s]\n", answers)
	b.WriteString("Explanation: [Detailed explanation of why the answer is correct]")
	return b.String()
}

// BuildSimilarPrompt asks for structured four-option questions that build on
// req.Question without repeating it or anything in req.Avoid.
func BuildSimilarPrompt(req SimilarRequest, cfg Config) string {
	var b strings.Builder
	writeSimilarHeader(&b, req, "multiple-choice questions")
	b.WriteString("\nEach question MUST have exactly 4 options (A, B, C, D), with only one correct answer.\n")
	b.WriteString("Format the output strictly as follows, separating questions with a blank line:\n\n")
	b.WriteString("Question: [Question text]\nA. [Option A]\nB. [Option B]\nC. [Option C]\nD. [Option D]\nCorrect Answer: [A/B/C/D]\n\n")
	b.WriteString("Ensure the correct answer is only a letter (A, B, C, D) and no explanation is included.")
	writeAvoid(&b, req.Avoid, cfg.MaxPriorQuestions)
	return b.String()
}

// BuildFreeFormSimilarPrompt asks for open questions with no options. The
// response is shown as-is.
func BuildFreeFormSimilarPrompt(req SimilarRequest, cfg Config) string {
	var b strings.Builder
	writeSimilarHeader(&b, req, "questions")
	writeAvoid(&b, req.Avoid, cfg.MaxPriorQuestions)
	return b.String()
}

func writeSimilarHeader(b *strings.Builder, req SimilarRequest, noun string) {
	fmt.Fprintf(b, "Generate %d unique, unambiguous, and unbiased %s based on the following question.\n", req.Count, noun)
	b.WriteString("The new question should cover a similar topic or idea but must not be a duplicate or semantically similar to the original question.\n")
	b.WriteString("It should enhance the user's understanding of the topic.\n\n")
	fmt.Fprintf(b, "Original Question: %s\n", req.Question.Text)
}

func writeAvoid(b *strings.Builder, avoid []string, max int) {
	if len(avoid) == 0 {
		return
	}
	b.WriteString("\n\nDo not repeat any of these existing questions:\n")
	b.WriteString(buildDedup(avoid, max))
}
