// bot/commands.go - Slash command definitions, dispatch and shared helpers
package bot

import (
	"log/slog"
	"strings"

	"coursequiz/models"

	"github.com/bwmarrin/discordgo"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "topics",
			Description: "Displays the available topics for quizzes",
		},
		{
			Name:        "upload_pdf",
			Description: "Saves the PDF without generating questions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "topic_name",
					Description: "Name of the topic to save the PDF under",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "PDF file with content",
					Required:    true,
				},
			},
		},
		{
			Name:        "upload_topic",
			Description: "Uploads a PDF and automatically generates questions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "topic_name",
					Description: "Name of the topic to save the PDF under",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "PDF file with content",
					Required:    true,
				},
			},
		},
		{
			Name:        "generate_questions",
			Description: "Generate multiple questions for a topic (Professors only)",
			Options: []*discordgo.ApplicationCommandOption{
				topicOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "qty",
					Description: "Quantity of new questions",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Type of questions",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: string(models.KindTrueFalse), Value: string(models.KindTrueFalse)},
						{Name: string(models.KindMultipleChoice), Value: string(models.KindMultipleChoice)},
						{Name: string(models.KindShortAnswer), Value: string(models.KindShortAnswer)},
					},
				},
			},
		},
		{
			Name:        "add_question",
			Description: "Add a question to a topic (Professors only)",
			Options: []*discordgo.ApplicationCommandOption{
				topicOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "Question text",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "answer",
					Description: "Correct answer (True or False)",
					Required:    true,
				},
			},
		},
		{
			Name:        "list_questions",
			Description: "List the questions of a topic (Professors only)",
			Options: []*discordgo.ApplicationCommandOption{
				topicOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "page",
					Description: "Page number",
					Required:    false,
				},
			},
		},
		{
			Name:        "delete_question",
			Description: "Delete a question from a topic (Professors only)",
			Options: []*discordgo.ApplicationCommandOption{
				topicOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "id",
					Description: "Question ID",
					Required:    true,
				},
			},
		},
		{
			Name:        "quiz",
			Description: "Take a 5-question quiz on a topic",
			Options: []*discordgo.ApplicationCommandOption{
				topicOption(),
			},
		},
		{
			Name:        "stats",
			Description: "Shows a summary of quizzes taken by all users (professors only)",
		},
		{
			Name:        "activity",
			Description: "Shows how many quizzes were taken per day (professors only)",
		},
		{
			Name:        "rank",
			Description: "Show the top XP leaderboard in the server",
		},
		{
			Name:        "my_rank",
			Description: "Show your XP and level",
		},
		{
			Name:        "user_rank",
			Description: "Display the specified user's rank (Professors only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "user_name",
					Description: "User full name",
					Required:    true,
				},
			},
		},
	}
}

func topicOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "topic",
		Description:  "Topic name",
		Required:     true,
		Autocomplete: true,
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
		return
	case discordgo.InteractionApplicationCommand:
	default:
		return
	}

	if i.GuildID == "" {
		respond(s, i, "❌ This bot only works inside a server.", true)
		return
	}

	b.deps.Servers.TouchLastInteraction(i.GuildID)

	data := i.ApplicationCommandData()
	slog.Info("🔍 Command executed",
		"command", data.Name,
		"guild_id", i.GuildID,
		"user_id", interactionUserID(i),
		"username", interactionUserName(i),
		"operation", "command_execution")

	switch data.Name {
	case "topics":
		b.handleTopics(s, i)
	case "upload_pdf":
		b.handleUploadPDF(s, i)
	case "upload_topic":
		b.handleUploadTopic(s, i)
	case "generate_questions":
		b.handleGenerateQuestions(s, i)
	case "add_question":
		b.handleAddQuestion(s, i)
	case "list_questions":
		b.handleListQuestions(s, i)
	case "delete_question":
		b.handleDeleteQuestion(s, i)
	case "quiz":
		b.handleQuiz(s, i)
	case "stats":
		b.handleStats(s, i)
	case "activity":
		b.handleActivity(s, i)
	case "rank":
		b.handleRank(s, i)
	case "my_rank":
		b.handleMyRank(s, i)
	case "user_rank":
		b.handleUserRank(s, i)
	}
}

// handleAutocomplete serves topic-title suggestions for any command
// with a topic option.
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var current string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			current = opt.StringValue()
		}
	}

	titles, err := b.deps.Topics.TopicTitles(i.GuildID)
	if err != nil {
		titles = nil
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
	for _, title := range titles {
		if current != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(current)) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  title,
			Value: title,
		})
		if len(choices) == 25 {
			break
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// isProfessor reports whether the invoking member carries the professor
// role.
func (b *Bot) isProfessor(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil {
			continue
		}
		if strings.EqualFold(role.Name, professorRole) {
			return true
		}
	}
	return false
}

// requireProfessor replies with the access-denied message when the
// member lacks the professor role.
func (b *Bot) requireProfessor(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if b.isProfessor(s, i) {
		return true
	}

	slog.Warn("Access denied - non-professor attempted a professor command",
		"command", i.ApplicationCommandData().Name,
		"guild_id", i.GuildID,
		"user_id", interactionUserID(i),
		"operation", "access_denied")
	respond(s, i, "⛔ This command is only available to professors.", true)
	return false
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("Failed to send interaction response", "error", err)
	}
}

func deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("Failed to defer interaction response", "error", err)
	}
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		slog.Error("Failed to send follow-up message", "error", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func interactionUserName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}

// optionMap flattens the interaction options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
