// repositories/level_repository.go
package repositories

import (
	"fmt"
	"log/slog"

	"coursequiz/models"

	"gorm.io/gorm"
)

// LevelRepository owns the XP, level and streak math.
type LevelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// LeaderboardRow is one leaderboard position.
type LeaderboardRow struct {
	UserID string
	Name   string
	XP     int
	Level  int
}

// CalculateLevel derives the level from cumulative XP. Linear: 100 XP
// per level.
func CalculateLevel(xp int) int {
	return xp/100 + 1
}

// AddXP applies an XP delta (which may be negative), clamps the stored
// value at zero, recomputes the level and returns the new XP.
func (r *LevelRepository) AddXP(serverID, userID string, delta int) (int, error) {
	var newXP int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		users := UserRepository{db: tx}
		user, err := users.getOrCreate(tx, serverID, userID, "")
		if err != nil {
			return err
		}

		newXP = user.XP + delta
		if newXP < 0 {
			newXP = 0
		}

		return tx.Model(user).Updates(map[string]interface{}{
			"xp":    newXP,
			"level": CalculateLevel(newXP),
		}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update XP for user %s: %w", userID, err)
	}

	slog.Info("XP updated",
		"guild_id", serverID,
		"user_id", userID,
		"delta", delta,
		"new_xp", newXP,
		"operation", "xp_update")
	return newXP, nil
}

// UserXP returns the user's XP and level, defaulting to 0 XP / level 1
// when the user has no record yet.
func (r *LevelRepository) UserXP(serverID, userID string) (int, int, error) {
	var user models.User
	err := r.db.Where("server_id = ? AND user_id = ?", serverID, userID).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return 0, 1, nil
	}
	if err != nil {
		return 0, 1, fmt.Errorf("failed to load XP for user %s: %w", userID, err)
	}
	return user.XP, user.Level, nil
}

// UserXPByName looks up XP and level by display name instead of id.
func (r *LevelRepository) UserXPByName(serverID, name string) (int, int, error) {
	var user models.User
	err := r.db.Where("server_id = ? AND name = ?", serverID, name).
		First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return 0, 1, nil
	}
	if err != nil {
		return 0, 1, fmt.Errorf("failed to load XP for %q: %w", name, err)
	}
	return user.XP, user.Level, nil
}

// Leaderboard returns the top users by XP, descending.
func (r *LevelRepository) Leaderboard(serverID string, limit int) ([]LeaderboardRow, error) {
	var users []models.User
	err := r.db.Where("server_id = ?", serverID).
		Order("xp DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	rows := make([]LeaderboardRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, LeaderboardRow{
			UserID: u.UserID,
			Name:   u.Name,
			XP:     u.XP,
			Level:  u.Level,
		})
	}
	return rows, nil
}

// UpdateStreak bumps the streak after a perfect quiz and resets it
// after any imperfect one, returning the new value.
func (r *LevelRepository) UpdateStreak(serverID, userID string, perfect bool) (int, error) {
	var streak int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		users := UserRepository{db: tx}
		user, err := users.getOrCreate(tx, serverID, userID, "")
		if err != nil {
			return err
		}

		if perfect {
			streak = user.Streak + 1
		} else {
			streak = 0
		}

		return tx.Model(user).Update("streak", streak).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update streak for user %s: %w", userID, err)
	}
	return streak, nil
}
