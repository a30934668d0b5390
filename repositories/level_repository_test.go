package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLevel(t *testing.T) {
	testCases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.level, CalculateLevel(tc.xp), "xp=%d", tc.xp)
	}
}

func TestAddXP(t *testing.T) {
	db := newTestDB(t)
	repo := NewLevelRepository(db)

	xp, err := repo.AddXP("guild-1", "user-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, xp)

	xp, err = repo.AddXP("guild-1", "user-1", 97)
	require.NoError(t, err)
	assert.Equal(t, 102, xp)

	storedXP, level, err := repo.UserXP("guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 102, storedXP)
	assert.Equal(t, 2, level)
}

func TestAddXP_NegativeDeltaClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewLevelRepository(db)

	_, err := repo.AddXP("guild-1", "user-1", 3)
	require.NoError(t, err)

	// A bad quiz can cost more XP than the user holds; the balance
	// never goes below zero.
	xp, err := repo.AddXP("guild-1", "user-1", -10)
	require.NoError(t, err)
	assert.Equal(t, 0, xp)

	storedXP, level, err := repo.UserXP("guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, storedXP)
	assert.Equal(t, 1, level)
}

func TestUserXP_UnknownUserDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewLevelRepository(db)

	xp, level, err := repo.UserXP("guild-1", "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, xp)
	assert.Equal(t, 1, level)
}

func TestLeaderboard(t *testing.T) {
	db := newTestDB(t)
	repo := NewLevelRepository(db)

	scores := map[string]int{"user-1": 30, "user-2": 250, "user-3": 120}
	for userID, xp := range scores {
		_, err := repo.AddXP("guild-1", userID, xp)
		require.NoError(t, err)
	}
	_, err := repo.AddXP("guild-2", "outsider", 999)
	require.NoError(t, err)

	rows, err := repo.Leaderboard("guild-1", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "user-2", rows[0].UserID)
	assert.Equal(t, 250, rows[0].XP)
	assert.Equal(t, 3, rows[0].Level)
	assert.Equal(t, "user-3", rows[1].UserID)
}

func TestUpdateStreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewLevelRepository(db)

	for want := 1; want <= 3; want++ {
		streak, err := repo.UpdateStreak("guild-1", "user-1", true)
		require.NoError(t, err)
		assert.Equal(t, want, streak)
	}

	streak, err := repo.UpdateStreak("guild-1", "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)

	streak, err = repo.UpdateStreak("guild-1", "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
