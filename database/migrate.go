// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"
	"log/slog"

	"coursequiz/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations.
func RunMigrations(db *gorm.DB) error {
	slog.Info("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Server{},
		&models.Topic{},
		&models.Question{},
		&models.User{},
		&models.HistoryEntry{},
		&models.Statistic{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	slog.Info("✅ All migrations completed")
	return nil
}

// createIndexes creates indexes AutoMigrate does not cover.
func createIndexes(db *gorm.DB) {
	// Topic lookups are by server + exact title
	db.Exec("CREATE INDEX IF NOT EXISTS idx_topics_server_title ON topics(server_id, title)")

	// Leaderboard ordering
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_server_xp ON users(server_id, xp DESC)")

	// Per-day aggregation scans
	db.Exec("CREATE INDEX IF NOT EXISTS idx_history_server_date ON history_entries(server_id, date)")
}
