// repositories/user_repository.go
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coursequiz/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Member is the subset of a guild member the bot stores.
type Member struct {
	ID   string
	Name string
}

// UserRepository manages per-server user records and their attempt
// history.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// RegisterMany registers every non-bot member of a guild in one batch.
// Already-registered members are left untouched.
func (r *UserRepository) RegisterMany(serverID string, members []Member) error {
	if len(members) == 0 {
		return nil
	}

	users := make([]models.User, 0, len(members))
	now := time.Now().UTC()
	for _, m := range members {
		users = append(users, models.User{
			ServerID:    serverID,
			UserID:      m.ID,
			Name:        m.Name,
			Level:       1,
			JoinedBotAt: now,
		})
	}

	err := r.db.Clauses(onConflictDoNothing()).Create(&users).Error
	if err != nil {
		return fmt.Errorf("failed to register users for server %s: %w", serverID, err)
	}

	slog.Info("✅ Server members registered",
		"guild_id", serverID,
		"user_count", len(users),
		"operation", "bulk_user_registration")
	return nil
}

// Register registers a single member, skipping bots handled by the
// caller. Returns false when the member was already registered.
func (r *UserRepository) Register(serverID string, member Member) (bool, error) {
	var existing models.User
	err := r.db.Where("server_id = ? AND user_id = ?", serverID, member.ID).
		First(&existing).Error
	if err == nil {
		slog.Warn("⚠️ User already registered",
			"guild_id", serverID,
			"user_id", member.ID,
			"username", member.Name,
			"operation", "single_user_registration")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check user %s: %w", member.ID, err)
	}

	user := models.User{
		ServerID:    serverID,
		UserID:      member.ID,
		Name:        member.Name,
		Level:       1,
		JoinedBotAt: time.Now().UTC(),
	}
	if err := r.db.Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to register user %s: %w", member.ID, err)
	}

	slog.Info("✅ User registered",
		"guild_id", serverID,
		"user_id", member.ID,
		"username", member.Name,
		"operation", "single_user_registration")
	return true, nil
}

// getOrCreate loads the per-server user row, creating it on first
// interaction.
func (r *UserRepository) getOrCreate(tx *gorm.DB, serverID, userID, name string) (*models.User, error) {
	var user models.User
	err := tx.Where("server_id = ? AND user_id = ?", serverID, userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ServerID:    serverID,
			UserID:      userID,
			Name:        name,
			Level:       1,
			JoinedBotAt: time.Now().UTC(),
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordAttempt appends exactly one immutable history entry for a
// finished quiz. failures is derived so success+failures always equals
// the quiz length.
func (r *UserRepository) RecordAttempt(serverID, userID, name, topicID string, correct, total int, kinds []models.QuestionKind) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		user, err := r.getOrCreate(tx, serverID, userID, name)
		if err != nil {
			return err
		}

		kindsJSON, err := json.Marshal(kinds)
		if err != nil {
			return err
		}

		entry := models.HistoryEntry{
			UserRowID: user.ID,
			ServerID:  serverID,
			TopicID:   topicID,
			Success:   correct,
			Failures:  total - correct,
			Kinds:     datatypes.JSON(kindsJSON),
			Date:      time.Now().UTC(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record attempt for user %s: %w", userID, err)
	}

	slog.Info("📌 History entry added",
		"guild_id", serverID,
		"user_id", userID,
		"username", name,
		"topic_id", topicID,
		"score", correct,
		"total_questions", total,
		"operation", "quiz_history_update")
	return nil
}
