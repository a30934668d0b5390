// repositories/stats_repository.go
package repositories

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"coursequiz/models"

	"gorm.io/gorm"
)

// StatsRepository writes the flat per-attempt feed and aggregates the
// per-user history log. Aggregations are read-only.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// UserStats is one user's slice of the server summary.
type UserStats struct {
	Name     string
	Attempts []models.HistoryEntry
}

// DayCount is the number of quizzes taken on one UTC calendar day.
type DayCount struct {
	Date  string
	Count int
}

// SaveStatistic appends one flat statistic row for a finished quiz.
// Failures here are logged and swallowed; losing a feed row must not
// fail the quiz.
func (r *StatsRepository) SaveStatistic(serverID, userID, name, topic string, correct, total int) {
	stat := models.Statistic{
		ServerID:  serverID,
		UserID:    userID,
		Name:      name,
		Topic:     topic,
		Correct:   correct,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.Create(&stat).Error; err != nil {
		slog.Error("❌ Error saving statistic",
			"guild_id", serverID,
			"user_id", userID,
			"error", err)
		return
	}

	slog.Info("✅ Statistic saved",
		"guild_id", serverID,
		"user_id", userID,
		"operation", "statistic_save")
}

// StatisticsByServer projects every user's history, keyed by user id.
// Users with no attempts are excluded.
func (r *StatsRepository) StatisticsByServer(serverID string) (map[string]UserStats, error) {
	var users []models.User
	err := r.db.Where("server_id = ?", serverID).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("history_entries.id ASC")
		}).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics for server %s: %w", serverID, err)
	}

	data := make(map[string]UserStats)
	for _, user := range users {
		if len(user.History) == 0 {
			continue
		}
		data[user.UserID] = UserStats{
			Name:     user.Name,
			Attempts: user.History,
		}
	}
	return data, nil
}

// QuizzesByPeriod counts history entries per UTC calendar day across
// the whole server, in ascending date order.
func (r *StatsRepository) QuizzesByPeriod(serverID string) ([]DayCount, error) {
	var entries []models.HistoryEntry
	err := r.db.Where("server_id = ?", serverID).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quizzes by period: %w", err)
	}

	perDay := make(map[string]int)
	for _, entry := range entries {
		day := entry.Date.UTC().Format("2006-01-02")
		perDay[day]++
	}

	days := make([]DayCount, 0, len(perDay))
	for day, count := range perDay {
		days = append(days, DayCount{Date: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days, nil
}
