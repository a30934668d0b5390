package bot

import (
	"testing"

	"coursequiz/models"

	"github.com/stretchr/testify/assert"
)

func TestAnswerable(t *testing.T) {
	questions := []models.Question{
		{ID: "1", Kind: models.KindTrueFalse},
		{ID: "2", Kind: models.KindShortAnswer},
		{ID: "3", Kind: models.KindMultipleChoice},
		{ID: "4", Kind: models.KindDefault},
	}

	filtered := answerable(questions)
	var ids []string
	for _, q := range filtered {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestSample(t *testing.T) {
	questions := make([]models.Question, 8)
	for i := range questions {
		questions[i].ID = string(rune('a' + i))
	}

	picked := sample(questions, 5)
	assert.Len(t, picked, 5)

	seen := make(map[string]bool)
	for _, q := range picked {
		assert.False(t, seen[q.ID], "question %s sampled twice", q.ID)
		seen[q.ID] = true
	}

	// Fewer questions than the quiz size returns all of them.
	short := sample(questions[:3], 5)
	assert.Len(t, short, 3)
}

func TestExpectedToken(t *testing.T) {
	testCases := []struct {
		question models.Question
		want     string
	}{
		{models.Question{Kind: models.KindTrueFalse, Answer: "True"}, "T"},
		{models.Question{Kind: models.KindTrueFalse, Answer: "False"}, "F"},
		{models.Question{Kind: models.KindMultipleChoice, Answer: "b"}, "B"},
		{models.Question{Kind: models.KindMultipleChoice, Answer: "D"}, "D"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, expectedToken(tc.question))
	}
}

func TestDistinctKinds(t *testing.T) {
	questions := []models.Question{
		{Kind: models.KindTrueFalse},
		{Kind: models.KindMultipleChoice},
		{Kind: models.KindTrueFalse},
	}

	kinds := distinctKinds(questions)
	assert.Equal(t, []models.QuestionKind{models.KindTrueFalse, models.KindMultipleChoice}, kinds)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "⚪⚪⚪⚪⚪⚪⚪⚪⚪⚪", progressBar(0))
	assert.Equal(t, "🔵🔵🔵🔵🔵⚪⚪⚪⚪⚪", progressBar(50))
	assert.Equal(t, "🔵🔵🔵🔵🔵🔵🔵🔵🔵⚪", progressBar(99))
	assert.Equal(t, "🔵🔵🔵🔵🔵🔵🔵🔵🔵🔵", progressBar(100))
}
