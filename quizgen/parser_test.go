package quizgen

import (
	"testing"

	"coursequiz/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestions_TrueFalse(t *testing.T) {
	raw := `[
		{"question": "The sky is blue.", "answer": "True"},
		{"question": "Fish can fly.", "answer": "false"},
		{"question": "Water boils at 100C.", "answer": "t"}
	]`

	questions, err := ParseQuestions(raw, 3, models.KindTrueFalse)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, "The sky is blue.", questions[0].Question)
	assert.Equal(t, "True", questions[0].Answer)
	assert.Equal(t, "False", questions[1].Answer)
	assert.Equal(t, "True", questions[2].Answer)
	for _, q := range questions {
		assert.Equal(t, models.KindTrueFalse, q.Kind)
	}
}

func TestParseQuestions_TruncatesExcess(t *testing.T) {
	raw := `[
		{"question": "Q1", "answer": "True"},
		{"question": "Q2", "answer": "False"},
		{"question": "Q3", "answer": "True"},
		{"question": "Q4", "answer": "False"}
	]`

	// The model ignored the quantity instruction; extras are dropped
	// and order is preserved.
	questions, err := ParseQuestions(raw, 2, models.KindTrueFalse)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Q1", questions[0].Question)
	assert.Equal(t, "Q2", questions[1].Question)
}

func TestParseQuestions_AcceptsUnderGeneration(t *testing.T) {
	raw := `[{"question": "Q1", "answer": "True"}]`

	questions, err := ParseQuestions(raw, 5, models.KindTrueFalse)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestParseQuestions_MultipleChoice(t *testing.T) {
	raw := `[{
		"question": "Which layer does TCP live in?",
		"options": {"A": "Physical", "B": "Transport", "C": "Application", "D": "Session"},
		"answer": "b"
	}]`

	questions, err := ParseQuestions(raw, 1, models.KindMultipleChoice)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "B", q.Answer)
	assert.Equal(t, "Transport", q.Alternatives["B"])
	assert.Len(t, q.Alternatives, 4)
}

func TestParseQuestions_MultipleChoiceAlternativesKey(t *testing.T) {
	// Some models emit "alternatives" instead of "options".
	raw := `[{
		"question": "Pick one.",
		"alternatives": {"A": "1", "B": "2", "C": "3", "D": "4"},
		"answer": "A"
	}]`

	questions, err := ParseQuestions(raw, 1, models.KindMultipleChoice)
	require.NoError(t, err)
	assert.Equal(t, "1", questions[0].Alternatives["A"])
}

func TestParseQuestions_StripsCodeFence(t *testing.T) {
	raw := "```json\n[{\"question\": \"Q1\", \"answer\": \"True\"}]\n```"

	questions, err := ParseQuestions(raw, 1, models.KindTrueFalse)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q1", questions[0].Question)
}

func TestParseQuestions_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		kind models.QuestionKind
	}{
		{
			name: "not json",
			raw:  "Sure! Here are your questions:",
			kind: models.KindTrueFalse,
		},
		{
			name: "object instead of array",
			raw:  `{"question": "Q1", "answer": "True"}`,
			kind: models.KindTrueFalse,
		},
		{
			name: "missing question text",
			raw:  `[{"question": "", "answer": "True"}]`,
			kind: models.KindTrueFalse,
		},
		{
			name: "missing answer",
			raw:  `[{"question": "Q1", "answer": ""}]`,
			kind: models.KindTrueFalse,
		},
		{
			name: "true/false answer is free text",
			raw:  `[{"question": "Q1", "answer": "maybe"}]`,
			kind: models.KindTrueFalse,
		},
		{
			name: "multiple choice missing option",
			raw:  `[{"question": "Q1", "options": {"A": "1", "B": "2", "C": "3"}, "answer": "A"}]`,
			kind: models.KindMultipleChoice,
		},
		{
			name: "multiple choice answer not an option",
			raw:  `[{"question": "Q1", "options": {"A": "1", "B": "2", "C": "3", "D": "4"}, "answer": "E"}]`,
			kind: models.KindMultipleChoice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := ParseQuestions(tc.raw, 5, tc.kind)
			assert.ErrorIs(t, err, ErrParse)
			assert.Nil(t, questions)
		})
	}
}

func TestParseQuestions_ShortAnswerPassesThrough(t *testing.T) {
	raw := `[{"question": "Name the transport protocol without handshakes.", "answer": "UDP"}]`

	questions, err := ParseQuestions(raw, 1, models.KindShortAnswer)
	require.NoError(t, err)
	assert.Equal(t, "UDP", questions[0].Answer)
}
