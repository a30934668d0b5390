package repositories

import (
	"testing"

	"coursequiz/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRegisterAndDeactivate(t *testing.T) {
	db := newTestDB(t)
	repo := NewServerRepository(db)

	require.NoError(t, repo.Register("guild-1", "owner-1"))

	var server models.Server
	require.NoError(t, db.First(&server, "id = ?", "guild-1").Error)
	assert.Equal(t, "owner-1", server.OwnerID)
	assert.Equal(t, models.ServerStatusActive, server.Status)

	// Re-inviting the bot reactivates a previously disabled server.
	require.NoError(t, repo.Deactivate("guild-1"))
	require.NoError(t, db.First(&server, "id = ?", "guild-1").Error)
	assert.Equal(t, models.ServerStatusDisabled, server.Status)

	require.NoError(t, repo.Register("guild-1", "owner-2"))
	require.NoError(t, db.First(&server, "id = ?", "guild-1").Error)
	assert.Equal(t, "owner-2", server.OwnerID)
	assert.Equal(t, models.ServerStatusActive, server.Status)
}
