// repositories/topic_repository.go
package repositories

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coursequiz/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrTopicNotFound means a by-title lookup missed.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrDuplicateTopic means a topic with the same title already exists
	// in the server.
	ErrDuplicateTopic = errors.New("topic title already exists in this server")
)

// TopicRepository persists topics and their question batches.
type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// CreateTopicWithQuestions creates a topic (when topicID is empty) or
// reuses an existing one, then inserts the whole question batch inside
// a single transaction so a topic never shows a partial set.
func (r *TopicRepository) CreateTopicWithQuestions(serverID, title, topicID string, questions []models.GeneratedQuestion, documentURL string, kind models.QuestionKind) (string, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if topicID == "" {
			// Check-and-create inside the transaction so two concurrent
			// uploads cannot both claim the same title.
			var count int64
			if err := tx.Model(&models.Topic{}).
				Where("server_id = ? AND title = ?", serverID, title).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateTopic
			}

			topicID = uuid.NewString()
			topic := models.Topic{
				ID:                 topicID,
				ServerID:           serverID,
				Title:              title,
				DocumentURL:        documentURL,
				QuestionsGenerated: len(questions),
				CreatedAt:          time.Now().UTC(),
			}
			if err := tx.Create(&topic).Error; err != nil {
				return err
			}
		}

		if len(questions) == 0 {
			return nil
		}

		records := make([]models.Question, 0, len(questions))
		for _, q := range questions {
			record := models.Question{
				ID:        uuid.NewString(),
				TopicID:   topicID,
				Text:      q.Question,
				Kind:      kind,
				Answer:    q.Answer,
				CreatedAt: time.Now().UTC(),
			}
			if len(q.Alternatives) > 0 {
				record.Alternatives = make(datatypes.JSONMap, len(q.Alternatives))
				for letter, text := range q.Alternatives {
					record.Alternatives[letter] = text
				}
			}
			records = append(records, record)
		}

		return tx.Create(&records).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to save topic %q: %w", title, err)
	}

	slog.Info("✅ Questions saved",
		"guild_id", serverID,
		"topic", title,
		"question_count", len(questions),
		"operation", "topic_question_batch")
	return topicID, nil
}

// CreateTopicWithoutQuestions creates the topic metadata only, for the
// upload-without-generating path.
func (r *TopicRepository) CreateTopicWithoutQuestions(serverID, title, documentURL string) (string, error) {
	return r.CreateTopicWithQuestions(serverID, title, "", nil, documentURL, models.KindDefault)
}

// TopicsByServer returns every topic in the server.
func (r *TopicRepository) TopicsByServer(serverID string) ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.Where("server_id = ?", serverID).
		Order("created_at ASC").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// TopicTitles returns the topic titles for autocomplete.
func (r *TopicRepository) TopicTitles(serverID string) ([]string, error) {
	topics, err := r.TopicsByServer(serverID)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(topics))
	for _, t := range topics {
		titles = append(titles, t.Title)
	}
	return titles, nil
}

// TopicByTitle finds a topic by exact title. First match wins when
// pre-uniqueness duplicates exist.
func (r *TopicRepository) TopicByTitle(serverID, title string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.Where("server_id = ? AND title = ?", serverID, title).
		Order("created_at ASC").
		First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up topic %q: %w", title, err)
	}
	return &topic, nil
}

// QuestionsByTopicTitle returns all questions of the first topic
// matching the title.
func (r *TopicRepository) QuestionsByTopicTitle(serverID, title string) ([]models.Question, error) {
	topic, err := r.TopicByTitle(serverID, title)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	err = r.db.Where("topic_id = ?", topic.ID).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for topic %q: %w", title, err)
	}
	return questions, nil
}
