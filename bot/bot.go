// bot/bot.go - Discord session lifecycle and event wiring
package bot

import (
	"fmt"
	"log/slog"

	"coursequiz/quizgen"
	"coursequiz/repositories"

	"github.com/bwmarrin/discordgo"
)

// professorRole is the guild role name that unlocks instructor
// commands.
const professorRole = "faculty"

// Deps groups everything the command handlers need. All database access
// goes through the injected repositories.
type Deps struct {
	Servers   *repositories.ServerRepository
	Users     *repositories.UserRepository
	Levels    *repositories.LevelRepository
	Topics    *repositories.TopicRepository
	Questions *repositories.QuestionRepository
	Stats     *repositories.StatsRepository
	Pipeline  *quizgen.Pipeline

	// Uploader is optional; without it topics keep the Discord
	// attachment URL as their document reference.
	Uploader *quizgen.Uploader
}

// Bot owns the Discord session and dispatches slash commands.
type Bot struct {
	session *discordgo.Session
	deps    *Deps
}

// New builds the bot around a fresh Discord session.
func New(token string, deps *Deps) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{session: session, deps: deps}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onGuildDelete)
	session.AddHandler(b.onGuildMemberAdd)
	session.AddHandler(b.onInteraction)

	return b, nil
}

// Run opens the gateway connection and registers the slash commands.
// It returns once the session is up; the caller decides when to Stop.
func (b *Bot) Run() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if _, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID, "", commandDefinitions(),
	); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	slog.Info("🌐 Slash commands synced")
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("✅ Bot connected",
		"username", r.User.Username,
		"guild_count", len(r.Guilds))
}

// onGuildCreate fires both on join and on startup for known guilds;
// registration is idempotent either way.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if err := b.deps.Servers.Register(g.ID, g.OwnerID); err != nil {
		slog.Error("❌ Error registering server", "guild_id", g.ID, "error", err)
		return
	}

	members := make([]repositories.Member, 0, len(g.Members))
	for _, m := range g.Members {
		if m.User == nil || m.User.Bot {
			continue
		}
		members = append(members, repositories.Member{
			ID:   m.User.ID,
			Name: m.User.Username,
		})
	}

	if err := b.deps.Users.RegisterMany(g.ID, members); err != nil {
		slog.Error("❌ Error registering guild members", "guild_id", g.ID, "error", err)
	}
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	if err := b.deps.Servers.Deactivate(g.ID); err != nil {
		slog.Error("❌ Error deactivating server", "guild_id", g.ID, "error", err)
	}
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}
	if _, err := b.deps.Users.Register(m.GuildID, repositories.Member{
		ID:   m.User.ID,
		Name: m.User.Username,
	}); err != nil {
		slog.Error("❌ Error registering member",
			"guild_id", m.GuildID,
			"user_id", m.User.ID,
			"error", err)
	}
}
