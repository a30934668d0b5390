package repositories

import (
	"testing"

	"coursequiz/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsByServer_ExcludesUsersWithoutAttempts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	stats := NewStatsRepository(db)

	// alice quizzed, bob only registered.
	require.NoError(t, users.RegisterMany("guild-1", []Member{
		{ID: "user-1", Name: "alice"},
		{ID: "user-2", Name: "bob"},
	}))
	require.NoError(t, users.RecordAttempt("guild-1", "user-1", "alice", "topic-1", 4, 5, nil))
	require.NoError(t, users.RecordAttempt("guild-1", "user-1", "alice", "topic-1", 5, 5, nil))

	data, err := stats.StatisticsByServer("guild-1")
	require.NoError(t, err)
	require.Len(t, data, 1)

	alice, ok := data["user-1"]
	require.True(t, ok)
	assert.Equal(t, "alice", alice.Name)
	require.Len(t, alice.Attempts, 2)
	assert.Equal(t, 4, alice.Attempts[0].Success)
	assert.Equal(t, 5, alice.Attempts[1].Success)
}

func TestQuizzesByPeriod(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatsRepository(db)

	entries := []models.HistoryEntry{
		{UserRowID: 1, ServerID: "guild-1", Success: 5, Date: day(t, "2026-03-02")},
		{UserRowID: 1, ServerID: "guild-1", Success: 3, Date: day(t, "2026-03-01")},
		{UserRowID: 2, ServerID: "guild-1", Success: 4, Date: day(t, "2026-03-02")},
		{UserRowID: 3, ServerID: "guild-2", Success: 2, Date: day(t, "2026-03-01")},
	}
	require.NoError(t, db.Create(&entries).Error)

	days, err := stats.QuizzesByPeriod("guild-1")
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, DayCount{Date: "2026-03-01", Count: 1}, days[0])
	assert.Equal(t, DayCount{Date: "2026-03-02", Count: 2}, days[1])
}

func TestSaveStatistic(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatsRepository(db)

	stats.SaveStatistic("guild-1", "user-1", "alice", "Networking basics", 4, 5)

	var stat models.Statistic
	require.NoError(t, db.First(&stat).Error)
	assert.Equal(t, "guild-1", stat.ServerID)
	assert.Equal(t, "Networking basics", stat.Topic)
	assert.Equal(t, 4, stat.Correct)
	assert.Equal(t, 5, stat.Total)
}
