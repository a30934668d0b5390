// models/user.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is a per-server member record. The same Discord account gets one
// row per guild; XP, level and streak never leak across guilds.
type User struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	ServerID string `json:"server_id" gorm:"not null;size:32;uniqueIndex:idx_users_server_member"`
	UserID   string `json:"user_id" gorm:"not null;size:32;uniqueIndex:idx_users_server_member"`
	Name     string `json:"name" gorm:"size:100"`

	// Progression
	XP     int `json:"xp" gorm:"default:0"`
	Level  int `json:"level" gorm:"default:1"`
	Streak int `json:"streak" gorm:"default:0"`

	JoinedBotAt time.Time      `json:"joined_bot_at"`
	History     []HistoryEntry `json:"history,omitempty" gorm:"foreignKey:UserRowID"`
}

// HistoryEntry is one immutable quiz-attempt record. Entries are only
// ever appended; nothing updates or deletes them.
type HistoryEntry struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	UserRowID uint           `json:"-" gorm:"not null;index"`
	ServerID  string         `json:"server_id" gorm:"not null;index;size:32"`
	TopicID   string         `json:"topic_id" gorm:"size:36"`
	Success   int            `json:"success" gorm:"default:0"`
	Failures  int            `json:"failures" gorm:"default:0"`
	Kinds     datatypes.JSON `json:"type"`
	Date      time.Time      `json:"date"`
}

func (User) TableName() string {
	return "users"
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
