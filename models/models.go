// models/models.go - Core quiz content models
package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionKind is the closed set of question formats the generator
// knows how to produce. The string values match what gets stored and
// what the slash commands show to users.
type QuestionKind string

const (
	KindTrueFalse      QuestionKind = "True/False"
	KindMultipleChoice QuestionKind = "Multiple Choice"
	KindShortAnswer    QuestionKind = "Short Answer"
	KindDefault        QuestionKind = "Default"
)

// Topic is a named unit of quiz content tied to one source document.
// Topics are never deleted in-band; they only accumulate questions.
type Topic struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:36"`
	ServerID           string     `json:"server_id" gorm:"not null;index;size:32"`
	Title              string     `json:"title" gorm:"not null;size:200;index"`
	DocumentURL        string     `json:"document_url" gorm:"size:500"`
	QuestionsGenerated int        `json:"questions_generated" gorm:"default:0"`
	CreatedAt          time.Time  `json:"created_at"`
	Questions          []Question `json:"questions,omitempty" gorm:"foreignKey:TopicID"`
}

// Question is one quiz item belonging to a Topic. Success and Failures
// count answered attempts and are only ever incremented.
type Question struct {
	ID           string            `json:"id" gorm:"primaryKey;size:36"`
	TopicID      string            `json:"topic_id" gorm:"not null;index;size:36"`
	Text         string            `json:"question" gorm:"not null;type:text"`
	Kind         QuestionKind      `json:"question_type" gorm:"size:30;default:'True/False'"`
	Answer       string            `json:"correct_answer" gorm:"not null;size:500"`
	Alternatives datatypes.JSONMap `json:"alternatives,omitempty"`
	Success      int               `json:"success" gorm:"default:0"`
	Failures     int               `json:"failures" gorm:"default:0"`
	CreatedAt    time.Time         `json:"created_at"`
}

// GeneratedQuestion is one validated item out of the LLM response,
// before it is persisted as a Question.
type GeneratedQuestion struct {
	Question     string            `json:"question"`
	Answer       string            `json:"answer"`
	Alternatives map[string]string `json:"options,omitempty"`
	Kind         QuestionKind      `json:"-"`
}

// Statistic is the flat per-attempt record kept in its own table for
// the server-wide feed, independent of per-user history.
type Statistic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ServerID  string    `json:"server_id" gorm:"not null;index;size:32"`
	UserID    string    `json:"user_id" gorm:"not null;size:32"`
	Name      string    `json:"name" gorm:"size:100"`
	Topic     string    `json:"topic" gorm:"size:200"`
	Correct   int       `json:"correct" gorm:"default:0"`
	Total     int       `json:"total" gorm:"default:0"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Topic) TableName() string {
	return "topics"
}

func (Question) TableName() string {
	return "questions"
}

func (Statistic) TableName() string {
	return "statistics"
}
