package quizgen

import (
	"context"
	"fmt"
	"testing"

	"coursequiz/database"
	"coursequiz/models"
	"coursequiz/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.response, g.err
}

func newPipelineTest(t *testing.T, generator Generator) (*Pipeline, *repositories.TopicRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	topics := repositories.NewTopicRepository(db)
	pipeline := NewPipeline(generator, topics)
	pipeline.extract = func(_ context.Context, _ string) (string, error) {
		return "TCP is a transport protocol. UDP has no handshake.", nil
	}
	return pipeline, topics
}

func TestPipeline_GeneratesAndStores(t *testing.T) {
	generator := &stubGenerator{response: `[
		{"question": "Q1", "answer": "True"},
		{"question": "Q2", "answer": "false"},
		{"question": "Q3", "answer": "True"},
		{"question": "Q4", "answer": "False"},
		{"question": "Q5", "answer": "t"}
	]`}
	pipeline, topics := newPipelineTest(t, generator)

	err := pipeline.GenerateQuestionsFromPDF(context.Background(),
		"Networking basics", "", "guild-1", "https://example.com/doc.pdf", 5, models.KindTrueFalse)
	require.NoError(t, err)

	assert.Contains(t, generator.prompt, "exactly 5")
	assert.Contains(t, generator.prompt, "TCP is a transport protocol.")

	topic, err := topics.TopicByTitle("guild-1", "Networking basics")
	require.NoError(t, err)
	assert.Equal(t, 5, topic.QuestionsGenerated)
	assert.Equal(t, "https://example.com/doc.pdf", topic.DocumentURL)

	questions, err := topics.QuestionsByTopicTitle("guild-1", "Networking basics")
	require.NoError(t, err)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Contains(t, []string{"True", "False"}, q.Answer)
		assert.Zero(t, q.Success)
		assert.Zero(t, q.Failures)
	}
}

func TestPipeline_GeneratorFailure(t *testing.T) {
	generator := &stubGenerator{err: fmt.Errorf("%w: model overloaded", ErrGeneration)}
	pipeline, topics := newPipelineTest(t, generator)

	err := pipeline.GenerateQuestionsFromPDF(context.Background(),
		"Networking basics", "", "guild-1", "https://example.com/doc.pdf", 5, models.KindTrueFalse)
	assert.ErrorIs(t, err, ErrGeneration)

	// Nothing persisted on failure.
	_, err = topics.TopicByTitle("guild-1", "Networking basics")
	assert.ErrorIs(t, err, repositories.ErrTopicNotFound)
}

func TestPipeline_ParseFailureAbortsSave(t *testing.T) {
	generator := &stubGenerator{response: "I could not generate questions, sorry."}
	pipeline, topics := newPipelineTest(t, generator)

	err := pipeline.GenerateQuestionsFromPDF(context.Background(),
		"Networking basics", "", "guild-1", "https://example.com/doc.pdf", 5, models.KindTrueFalse)
	assert.ErrorIs(t, err, ErrParse)

	_, err = topics.TopicByTitle("guild-1", "Networking basics")
	assert.ErrorIs(t, err, repositories.ErrTopicNotFound)
}

func TestPipeline_ExtractionFailure(t *testing.T) {
	generator := &stubGenerator{response: "[]"}
	pipeline, _ := newPipelineTest(t, generator)
	pipeline.extract = func(_ context.Context, _ string) (string, error) {
		return "", fmt.Errorf("%w: no pages", ErrExtraction)
	}

	err := pipeline.GenerateQuestionsFromPDF(context.Background(),
		"Networking basics", "", "guild-1", "https://example.com/doc.pdf", 5, models.KindTrueFalse)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Empty(t, generator.prompt)
}

func TestPipeline_DuplicateTopic(t *testing.T) {
	generator := &stubGenerator{response: `[{"question": "Q1", "answer": "True"}]`}
	pipeline, topics := newPipelineTest(t, generator)

	_, err := topics.CreateTopicWithoutQuestions("guild-1", "Networking basics", "")
	require.NoError(t, err)

	err = pipeline.GenerateQuestionsFromPDF(context.Background(),
		"Networking basics", "", "guild-1", "https://example.com/doc.pdf", 1, models.KindTrueFalse)
	assert.ErrorIs(t, err, repositories.ErrDuplicateTopic)
}
