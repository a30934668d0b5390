// Package repositories wraps all database access behind small
// constructor-injected types, one per collection the bot works with.
package repositories

import "gorm.io/gorm/clause"

func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}
