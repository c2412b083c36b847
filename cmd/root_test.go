package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/events"
	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/store"
)

const twoQuestions = `Question: What is the SI unit of force?
A. Joule
B. Newton
C. Watt
D. Pascal
Correct Answer: B
Explanation: Force is measured in newtons.

Question: What is the SI unit of power?
A. Joule
B. Newton
C. Watt
D. Pascal
Correct Answer: C
`

// sandbox isolates the settings, log and working directories of a test.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, name := range []string{"CONFIG", "PROVIDER", "MODEL", "BASE_URL", "LOG_FILE", "LOG_LEVEL", "EVENTS_DB"} {
		t.Setenv("MCQGEN_"+name, "")
	}
	work := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(work, 0o755))
	t.Chdir(work)
	return work
}

// run executes the command line against mock and returns its output.
func run(t *testing.T, mock *llm.MockProvider, args ...string) (string, error) {
	t.Helper()
	env := &environment{
		newProvider: func(context.Context, llm.Config, events.Repo, *zap.Logger) (llm.Provider, error) {
			return mock, nil
		},
	}
	defer env.close()

	var out bytes.Buffer
	root := newRootCmd(env)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color", "--events-db=off"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func savedSet(t *testing.T, path string) {
	t.Helper()
	_, err := store.Save(&mcq.QuestionSet{
		Specialization: "Physics",
		Subfield:       "Mechanics",
		GeneratedAt:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Questions: []mcq.Question{
			{
				Text: "What is the SI unit of force?",
				Options: mcq.Options{
					{Label: "A", Text: "Joule"},
					{Label: "B", Text: "Newton"},
				},
				Correct:     mcq.LabelAnswer("B"),
				Explanation: "Newton's second law.",
			},
			{
				Text: "What is the SI unit of energy?",
				Options: mcq.Options{
					{Label: "A", Text: "Joule"},
					{Label: "B", Text: "Newton"},
				},
				Correct: mcq.LabelAnswer("A"),
			},
		},
	}, path)
	require.NoError(t, err)
}

func TestGenerate_PrintsAndSaves(t *testing.T) {
	sandbox(t)
	mock := llm.NewMockText(twoQuestions)

	out, err := run(t, mock, "generate", "-s", "Physics", "-c", "2", "-a", "-o", "physics.json")
	require.NoError(t, err)

	assert.Contains(t, out, "Successfully generated 2 questions")
	assert.Contains(t, out, "Question 1:\nWhat is the SI unit of force?")
	assert.Contains(t, out, "✓ Correct Answer: B")
	assert.Contains(t, out, "Questions saved to 'physics.json'")
	assert.Equal(t, 3000, mock.Calls[0].MaxTokens)

	set, err := store.Load("physics.json")
	require.NoError(t, err)
	assert.Equal(t, "Physics", set.Specialization)
	assert.Len(t, set.Questions, 2)
}

func TestGenerate_SaveGeneratesName(t *testing.T) {
	work := sandbox(t)

	_, err := run(t, llm.NewMockText(twoQuestions), "generate", "-s", "Physics", "-c", "1", "--save")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(work, "mcq_physics_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	set, err := store.Load(matches[0])
	require.NoError(t, err)
	assert.Len(t, set.Questions, 1, "trimmed to the requested count")
}

func TestGenerate_EmptyResponseFails(t *testing.T) {
	sandbox(t)

	_, err := run(t, llm.NewMockText("Sorry, I cannot help with that."), "generate", "-s", "Physics")
	assert.ErrorIs(t, err, errNoQuestions)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	sandbox(t)
	mock := llm.NewMockText(twoQuestions)

	_, err := run(t, mock, "generate", "-s", "Physics", "-n", "1")
	var verr *mcq.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, mock.CallCount(), "no request for an invalid config")
}

func TestGenerate_RequiresSpecialization(t *testing.T) {
	sandbox(t)

	_, err := run(t, llm.NewMockText(twoQuestions), "generate")
	assert.ErrorContains(t, err, "specialization")
}

func TestGenerateBinary(t *testing.T) {
	sandbox(t)
	mock := llm.NewMockText("Question: Plants need light.\nAnswer: Yes\n\nQuestion: Rocks breathe.\nAnswer: No\n")

	out, err := run(t, mock, "generate-binary", "-s", "Biology", "-t", "yes_no", "-c", "2", "-a", "-o", "bio.json")
	require.NoError(t, err)

	assert.Contains(t, out, "Successfully generated 2 yes/no questions")
	assert.Contains(t, out, "✓ Correct Answer: Yes")
	assert.NotContains(t, out, "A. Yes", "binary options are not listed")
	assert.Equal(t, 2000, mock.Calls[0].MaxTokens)

	set, err := store.Load("bio.json")
	require.NoError(t, err)
	assert.Equal(t, mcq.TypeYesNo, set.Type)
}

func TestGenerateBinary_BadType(t *testing.T) {
	sandbox(t)

	_, err := run(t, llm.NewMockText(""), "generate-binary", "-s", "Biology", "-t", "maybe")
	var verr *mcq.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoad(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")

	out, err := run(t, nil, "load", "physics.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded from:    physics.json")
	assert.Contains(t, out, "Specialization: Physics - Mechanics")
	assert.Contains(t, out, "  B. Newton")
	assert.NotContains(t, out, "Correct Answer")
}

func TestLoad_MissingFile(t *testing.T) {
	sandbox(t)

	_, err := run(t, nil, "load", "nope.json")
	var nf *store.FileNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestExplain(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")
	mock := llm.NewMockText("A newton is one kilogram metre per second squared.")

	out, err := run(t, mock, "explain", "physics.json", "-q", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Explanation (Question 1)")
	assert.Contains(t, out, "kilogram metre per second squared")
	assert.NotEmpty(t, mock.Calls[0].System)
	assert.Equal(t, 1500, mock.Calls[0].MaxTokens)
	assert.Contains(t, mock.LastPrompt(), "What is the SI unit of force?")
}

func TestExplain_QuestionOutOfRange(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")
	mock := llm.NewMockText("unused")

	_, err := run(t, mock, "explain", "physics.json", "-q", "3")
	var verr *mcq.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "question-num", verr.Field)
	assert.Zero(t, mock.CallCount())
}

func TestPrerequisites(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")

	out, err := run(t, llm.NewMockText("1. Newton's laws\n2. SI base units"), "prerequisites", "physics.json", "-q", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Prerequisites (Question 2)")
	assert.Contains(t, out, "SI base units")
}

func TestTranslate_Save(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")
	// Question one: text, two options, explanation. Question two has no
	// explanation.
	mock := llm.NewMockText(
		"¿Cuál es la unidad de fuerza?", "Julio", "Newton", "La segunda ley de Newton.",
		"¿Cuál es la unidad de energía?", "Julio", "Newton",
	)

	out, err := run(t, mock, "translate", "physics.json", "-l", "Spanish", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Translating questions to SPANISH")
	assert.Contains(t, out, "Questions saved to 'physics_spanish.json'")
	assert.Equal(t, 7, mock.CallCount())

	set, err := store.Load("physics_spanish.json")
	require.NoError(t, err)
	assert.Equal(t, "spanish", set.Language)
	assert.Equal(t, "¿Cuál es la unidad de fuerza?", set.Questions[0].Text)
	assert.Equal(t, mcq.LabelAnswer("B"), set.Questions[0].Correct)
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")

	_, err := run(t, llm.NewMockText(), "translate", "physics.json", "-l", "klingon")
	var verr *mcq.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTranslate_FailureSavesNothing(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")

	_, err := run(t, llm.NewMockText("¿Cuál es la unidad de fuerza?"), "translate", "physics.json", "-l", "spanish", "--save")
	require.Error(t, err)
	assert.NoFileExists(t, "physics_spanish.json")
}

func TestSimilar(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")
	mock := llm.NewMockText(`Question: What is the SI unit of pressure?
A. Joule
B. Newton
C. Watt
D. Pascal
Correct Answer: D`)

	out, err := run(t, mock, "similar", "physics.json", "-q", "1", "-o", "more.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully generated 1 similar questions")
	assert.Contains(t, mock.LastPrompt(), "What is the SI unit of energy?", "other questions are avoided")

	set, err := store.Load("more.json")
	require.NoError(t, err)
	assert.Equal(t, "Physics", set.Specialization)
	assert.Equal(t, "What is the SI unit of pressure?", set.Questions[0].Text)
}

func TestSimilar_FreeForm(t *testing.T) {
	sandbox(t)
	savedSet(t, "physics.json")

	out, err := run(t, llm.NewMockText("1. What is the SI unit of momentum?"), "similar", "physics.json", "-q", "1", "--free-form")
	require.NoError(t, err)
	assert.Contains(t, out, "What is the SI unit of momentum?")
}

func TestInitModel(t *testing.T) {
	sandbox(t)

	out, err := run(t, nil, "init-model", "--provider", "claude", "--model", "claude-sonnet-4-5")
	require.NoError(t, err)
	assert.Contains(t, out, "Model initialized: anthropic/claude-sonnet-4-5")

	out, err = run(t, nil, "info")
	require.NoError(t, err)
	assert.Regexp(t, `Provider:\s+anthropic`, out)
	assert.Regexp(t, `Model:\s+claude-sonnet-4-5`, out)
}

func TestInitModel_Defaults(t *testing.T) {
	sandbox(t)

	out, err := run(t, nil, "init-model")
	require.NoError(t, err)
	assert.Contains(t, out, "Model initialized: perplexity/sonar")
}

func TestLLM_LedgerDisabled(t *testing.T) {
	sandbox(t)

	_, err := run(t, nil, "llm", "list")
	assert.ErrorIs(t, err, errLedgerDisabled)
}

func TestLLM_ListAndStats(t *testing.T) {
	dir := sandbox(t)
	dbPath := filepath.Join(dir, "events.db")

	st, err := events.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.AppendLLMRequest(ctx, events.LLMRequest{
		RequestID:    "req-1",
		Provider:     llm.ProviderOpenAI,
		Model:        "gpt-4o-mini",
		Purpose:      llm.PurposeGenerate,
		InputTokens:  1000,
		OutputTokens: 500,
		LatencyMs:    1200,
		Success:      true,
	}))
	require.NoError(t, st.Close())

	// The later --events-db overrides the "off" default of run.
	out, err := run(t, nil, "--events-db", dbPath, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "✓")

	out, err = run(t, nil, "--events-db", dbPath, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "Estimated Cost (USD)")

	_, err = run(t, nil, "--events-db", dbPath, "llm", "view", "99")
	assert.ErrorContains(t, err, "event 99 not found")
}

func TestVersion(t *testing.T) {
	sandbox(t)

	out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "mcqgen (devel)\n", out)
}
