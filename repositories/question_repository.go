// repositories/question_repository.go
package repositories

import (
	"errors"
	"fmt"
	"time"

	"coursequiz/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrQuestionNotFound means a question id lookup missed.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository handles single-question CRUD and attempt counters.
type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// QuestionsByTopic lists a topic's questions ordered by question text.
func (r *QuestionRepository) QuestionsByTopic(serverID, title string) ([]models.Question, error) {
	topics := TopicRepository{db: r.db}
	topic, err := topics.TopicByTitle(serverID, title)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	err = r.db.Where("topic_id = ?", topic.ID).
		Order("text ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// AddQuestion appends a single hand-written question to a topic and
// returns its id.
func (r *QuestionRepository) AddQuestion(serverID, title, text, answer string, kind models.QuestionKind) (string, error) {
	topics := TopicRepository{db: r.db}
	topic, err := topics.TopicByTitle(serverID, title)
	if err != nil {
		return "", err
	}

	question := models.Question{
		ID:        uuid.NewString(),
		TopicID:   topic.ID,
		Text:      text,
		Kind:      kind,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&question).Error; err != nil {
		return "", fmt.Errorf("failed to add question: %w", err)
	}
	return question.ID, nil
}

// DeleteQuestion removes one question from a topic by id.
func (r *QuestionRepository) DeleteQuestion(serverID, title, questionID string) error {
	topics := TopicRepository{db: r.db}
	topic, err := topics.TopicByTitle(serverID, title)
	if err != nil {
		return err
	}

	result := r.db.Where("id = ? AND topic_id = ?", questionID, topic.ID).
		Delete(&models.Question{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete question %s: %w", questionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// RecordAnswer bumps the success or failure counter of a question.
// The increment runs as a SQL expression so concurrent answers to the
// same question never lose updates.
func (r *QuestionRepository) RecordAnswer(questionID string, correct bool) error {
	column := "failures"
	if correct {
		column = "success"
	}

	err := r.db.Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to update question counters: %w", err)
	}
	return nil
}
