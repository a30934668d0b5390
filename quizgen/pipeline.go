// quizgen/pipeline.go - Generation pipeline orchestration
package quizgen

import (
	"context"
	"log/slog"

	"coursequiz/models"
	"coursequiz/repositories"
)

// Pipeline runs the full generation sequence: extract text, build the
// prompt, call the model, parse the output, persist the batch. Every
// stage failure aborts the run; there are no retries and no partial
// saves beyond what the store's transaction already guarantees.
type Pipeline struct {
	generator Generator
	topics    *repositories.TopicRepository

	// extract is swappable so tests can run without a real PDF.
	extract func(ctx context.Context, source string) (string, error)
}

// NewPipeline wires the pipeline with its collaborators.
func NewPipeline(generator Generator, topics *repositories.TopicRepository) *Pipeline {
	return &Pipeline{
		generator: generator,
		topics:    topics,
		extract:   ExtractText,
	}
}

// GenerateQuestionsFromPDF extracts the document text, generates
// quantity questions of the given kind and stores them under the topic.
// An empty topicID creates a new topic; otherwise questions attach to
// the existing one.
func (p *Pipeline) GenerateQuestionsFromPDF(ctx context.Context, topicName, topicID, serverID, pdfURL string, quantity int, kind models.QuestionKind) error {
	text, err := p.extract(ctx, pdfURL)
	if err != nil {
		return err
	}

	prompt := BuildPrompt(topicName, text, quantity, kind)

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	questions, err := ParseQuestions(raw, quantity, kind)
	if err != nil {
		return err
	}

	if _, err := p.topics.CreateTopicWithQuestions(serverID, topicName, topicID, questions, pdfURL, kind); err != nil {
		return err
	}

	slog.Info("🧠 Question generation pipeline completed",
		"guild_id", serverID,
		"topic", topicName,
		"requested", quantity,
		"generated", len(questions),
		"kind", string(kind),
		"operation", "question_generation")
	return nil
}
