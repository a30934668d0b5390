// repositories/server_repository.go
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"coursequiz/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ServerRepository tracks the guilds the bot lives in.
type ServerRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) *ServerRepository {
	return &ServerRepository{db: db}
}

// Register records a guild the bot just joined, or reactivates a known
// one.
func (r *ServerRepository) Register(serverID, ownerID string) error {
	server := models.Server{
		ID:              serverID,
		OwnerID:         ownerID,
		Status:          models.ServerStatusActive,
		JoinedAt:        time.Now().UTC(),
		LastInteraction: time.Now().UTC(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner_id", "status"}),
	}).Create(&server).Error
	if err != nil {
		return fmt.Errorf("failed to register server %s: %w", serverID, err)
	}

	slog.Info("✅ Server registered",
		"guild_id", serverID,
		"operation", "server_registration")
	return nil
}

// UpdateStatus sets the server status string.
func (r *ServerRepository) UpdateStatus(serverID, status string) error {
	err := r.db.Model(&models.Server{}).
		Where("id = ?", serverID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update server %s status: %w", serverID, err)
	}

	slog.Info("✅ Server status updated",
		"guild_id", serverID,
		"new_status", status,
		"operation", "server_status_update")
	return nil
}

// Deactivate marks a server the bot was removed from.
func (r *ServerRepository) Deactivate(serverID string) error {
	return r.UpdateStatus(serverID, models.ServerStatusDisabled)
}

// TouchLastInteraction stamps the server's last-interaction time. Called
// on every command; failures are logged and swallowed.
func (r *ServerRepository) TouchLastInteraction(serverID string) {
	err := r.db.Model(&models.Server{}).
		Where("id = ?", serverID).
		Update("last_interaction", time.Now().UTC()).Error
	if err != nil {
		slog.Error("❌ Error updating last interaction",
			"guild_id", serverID,
			"error", err)
		return
	}

	slog.Debug("🕒 Last interaction updated",
		"guild_id", serverID,
		"operation", "server_interaction_update")
}
