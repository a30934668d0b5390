// models/server.go
package models

import "time"

// Server status values.
const (
	ServerStatusActive   = "Active"
	ServerStatusDisabled = "disabled"
)

// Server is the tenant boundary: one row per Discord guild the bot has
// joined. Every topic, question, user and statistic is scoped to one.
type Server struct {
	ID              string    `json:"server_id" gorm:"primaryKey;size:32"`
	OwnerID         string    `json:"owner_id" gorm:"size:32"`
	Status          string    `json:"status" gorm:"size:20;default:'Active'"`
	JoinedAt        time.Time `json:"joined_at"`
	LastInteraction time.Time `json:"last_interaction"`
}

func (Server) TableName() string {
	return "servers"
}
