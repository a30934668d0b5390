// bot/stats.go - Instructor reporting
package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const recentAttempts = 3

func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	data, err := b.deps.Stats.StatisticsByServer(i.GuildID)
	if err != nil {
		slog.Error("❌ Error fetching statistics", "guild_id", i.GuildID, "error", err)
		respond(s, i, "❌ An error occurred while fetching statistics.", true)
		return
	}

	if len(data) == 0 {
		respond(s, i, "📭 No statistics recorded yet.", true)
		return
	}

	titles := b.topicTitleIndex(i.GuildID)

	var sb strings.Builder
	sb.WriteString("📊 **Server statistics**\n")
	for _, stats := range data {
		fmt.Fprintf(&sb, "\n**%s** — %d quizzes taken\n", stats.Name, len(stats.Attempts))

		start := len(stats.Attempts) - recentAttempts
		if start < 0 {
			start = 0
		}
		for _, attempt := range stats.Attempts[start:] {
			topic := titles[attempt.TopicID]
			if topic == "" {
				topic = "(deleted topic)"
			}
			fmt.Fprintf(&sb, "• %s — `%s`: %d correct, %d wrong\n",
				attempt.Date.UTC().Format("2006-01-02"),
				topic,
				attempt.Success,
				attempt.Failures)
		}
	}

	respond(s, i, sb.String(), true)
}

func (b *Bot) handleActivity(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	days, err := b.deps.Stats.QuizzesByPeriod(i.GuildID)
	if err != nil {
		slog.Error("❌ Error fetching activity", "guild_id", i.GuildID, "error", err)
		respond(s, i, "❌ An error occurred while fetching activity.", true)
		return
	}

	if len(days) == 0 {
		respond(s, i, "📭 No quiz activity recorded yet.", true)
		return
	}

	var sb strings.Builder
	sb.WriteString("🕒 **Quizzes per day**\n")
	for _, day := range days {
		fmt.Fprintf(&sb, "• %s: %d\n", day.Date, day.Count)
	}
	respond(s, i, sb.String(), true)
}

// topicTitleIndex maps topic id to title for display. Lookup failures
// degrade to empty titles rather than failing the report.
func (b *Bot) topicTitleIndex(serverID string) map[string]string {
	titles := make(map[string]string)
	topics, err := b.deps.Topics.TopicsByServer(serverID)
	if err != nil {
		slog.Warn("⚠️ Could not load topic titles for report", "guild_id", serverID, "error", err)
		return titles
	}
	for _, topic := range topics {
		titles[topic.ID] = topic.Title
	}
	return titles
}
