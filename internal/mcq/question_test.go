package mcq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestion() Question {
	return Question{
		Text: "Which planet is known as the Red Planet?",
		Options: Options{
			{Label: "A", Text: "Venus"},
			{Label: "B", Text: "Mars"},
			{Label: "C", Text: "Jupiter"},
			{Label: "D", Text: "Saturn"},
		},
		Correct: LabelAnswer("B"),
	}
}

func TestOptionsMarshalKeepsOrder(t *testing.T) {
	opts := Options{{Label: "B", Text: "second"}, {Label: "A", Text: "first"}}
	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.Equal(t, `{"B":"second","A":"first"}`, string(data))

	var back Options
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, opts, back)
}

func TestOptionsUnmarshalList(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`["A) Weight loss", "Improved mood", "C. Energy"]`), &opts))
	assert.Equal(t, Options{
		{Label: "A", Text: "Weight loss"},
		{Label: "B", Text: "Improved mood"},
		{Label: "C", Text: "Energy"},
	}, opts)
}

func TestAnswerJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Answer
	}{
		{`["C","A"]`, LabelAnswer("A", "C")},
		{`"B"`, LabelAnswer("B")},
		{`"a and c"`, LabelAnswer("A", "C")},
		{`["All of the Above"]`, SentinelAnswer(AllOfTheAbove)},
		{`"none of above"`, SentinelAnswer(NoneOfTheAbove)},
	}
	for _, tt := range tests {
		var got Answer
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got), tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %+v", tt.in, got)
	}

	data, err := json.Marshal(SentinelAnswer(NoneOfTheAbove))
	require.NoError(t, err)
	assert.JSONEq(t, `["None of the Above"]`, string(data))

	var bad Answer
	assert.Error(t, json.Unmarshal([]byte(`["A","All of the Above"]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestAnswerResolve(t *testing.T) {
	labels := []string{"A", "B", "C"}
	assert.Equal(t, labels, SentinelAnswer(AllOfTheAbove).Resolve(labels))
	assert.Empty(t, SentinelAnswer(NoneOfTheAbove).Resolve(labels))
	assert.Equal(t, []string{"B"}, LabelAnswer("b").Resolve(labels))
}

func TestMatchSentinel(t *testing.T) {
	for _, s := range []string{"All of the Above", "ALL OF ABOVE", "  all   of the above "} {
		got, ok := MatchSentinel(s)
		assert.True(t, ok, s)
		assert.Equal(t, AllOfTheAbove, got)
	}
	_, ok := MatchSentinel("All of them")
	assert.False(t, ok)
}

func TestSplitLabels(t *testing.T) {
	for _, s := range []string{"A, C", "A and C", "A & C", "A+C", "A/C", "a; c"} {
		assert.Equal(t, []string{"a", "c"}, SplitLabels(s), s)
	}
	assert.Equal(t, []string{"a c"}, SplitLabels("A C"))
}

func TestQuestionValidate(t *testing.T) {
	require.NoError(t, sampleQuestion().Validate())

	q := sampleQuestion()
	q.Correct = LabelAnswer("E")
	assert.ErrorContains(t, q.Validate(), "not an option label")

	q = sampleQuestion()
	q.Options = q.Options[:1]
	assert.Error(t, q.Validate())

	q = sampleQuestion()
	q.Options[2].Label = "D"
	assert.ErrorContains(t, q.Validate(), "option labels")

	q = sampleQuestion()
	q.Correct = Answer{}
	assert.Error(t, q.Validate())

	q = sampleQuestion()
	q.Correct = SentinelAnswer(NoneOfTheAbove)
	assert.NoError(t, q.Validate())
}

func TestQuestionSetQuestion(t *testing.T) {
	set := &QuestionSet{Questions: []Question{sampleQuestion()}}
	q, err := set.Question(1)
	require.NoError(t, err)
	assert.Equal(t, "Which planet is known as the Red Planet?", q.Text)

	_, err = set.Question(2)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
