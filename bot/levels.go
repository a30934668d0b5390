// bot/levels.go - Leaderboard and personal rank
package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	leaderboardSize = 5
	xpPerLevel      = 100
	progressSlots   = 10
)

func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rows, err := b.deps.Levels.Leaderboard(i.GuildID, leaderboardSize)
	if err != nil {
		slog.Error("❌ Error fetching leaderboard", "guild_id", i.GuildID, "error", err)
		respond(s, i, "❌ An error occurred while fetching the leaderboard.", true)
		return
	}

	if len(rows) == 0 {
		respond(s, i, "📭 Nobody has earned XP yet.", true)
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Leaderboard**\n")
	for idx, row := range rows {
		name := row.Name
		if name == "" {
			name = row.UserID
		}
		fmt.Fprintf(&sb, "%d. %s — %d XP (Level %d)\n", idx+1, name, row.XP, row.Level)
	}
	respond(s, i, sb.String(), false)
}

func (b *Bot) handleMyRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)

	xp, level, err := b.deps.Levels.UserXP(i.GuildID, userID)
	if err != nil {
		slog.Error("❌ Error fetching rank", "guild_id", i.GuildID, "user_id", userID, "error", err)
		respond(s, i, "❌ An error occurred while fetching your rank.", true)
		return
	}

	inLevel := xp - xpPerLevel*(level-1)
	respond(s, i, fmt.Sprintf("**%s**\nLevel %d (%d/%d XP)\n%s",
		interactionUserName(i), level, inLevel, xpPerLevel, progressBar(inLevel)), true)
}

func (b *Bot) handleUserRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	name := optionMap(i)["user_name"].StringValue()

	xp, level, err := b.deps.Levels.UserXPByName(i.GuildID, name)
	if err != nil {
		slog.Error("❌ Error fetching user rank", "guild_id", i.GuildID, "name", name, "error", err)
		respond(s, i, "❌ An error occurred while fetching the user's rank.", true)
		return
	}

	inLevel := xp - xpPerLevel*(level-1)
	respond(s, i, fmt.Sprintf("📊 Rank of **%s**\nLevel %d (%d/%d XP)\n%s",
		name, level, inLevel, xpPerLevel, progressBar(inLevel)), true)
}

// progressBar renders XP progress inside the current level as ten
// filled or empty segments.
func progressBar(inLevel int) string {
	filled := inLevel * progressSlots / xpPerLevel
	if filled > progressSlots {
		filled = progressSlots
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("🔵", filled) + strings.Repeat("⚪", progressSlots-filled)
}
