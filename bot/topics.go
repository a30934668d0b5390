// bot/topics.go - Topic listing, PDF upload and question generation commands
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"coursequiz/models"
	"coursequiz/quizgen"
	"coursequiz/repositories"

	"github.com/bwmarrin/discordgo"
)

// defaultUploadQuantity is how many questions /upload_topic generates
// right after the upload.
const defaultUploadQuantity = 50

func (b *Bot) handleTopics(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	deferReply(s, i, false)

	topics, err := b.deps.Topics.TopicsByServer(i.GuildID)
	if err != nil {
		slog.Error("❌ Error in /topics command",
			"guild_id", i.GuildID,
			"error", err,
			"operation", "command_error")
		followUp(s, i, "❌ Error loading topics.", true)
		return
	}

	if len(topics) == 0 {
		followUp(s, i, "📂 No topics available yet.", false)
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 Available topics:\n")
	for _, t := range topics {
		fmt.Fprintf(&sb, "- %s\n", t.Title)
	}
	followUp(s, i, sb.String(), false)
}

func (b *Bot) handleUploadPDF(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	deferReply(s, i, true)

	topicName, attachment, ok := b.uploadArguments(s, i)
	if !ok {
		return
	}

	pdfURL, err := b.storePDF(i.GuildID, topicName, attachment)
	if err != nil {
		slog.Error("❌ Error saving PDF", "guild_id", i.GuildID, "topic", topicName, "error", err)
		followUp(s, i, "❌ Error saving the PDF.", true)
		return
	}

	if _, err := b.deps.Topics.CreateTopicWithoutQuestions(i.GuildID, topicName, pdfURL); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTopic) {
			followUp(s, i, fmt.Sprintf("❌ A topic named `%s` already exists.", topicName), true)
			return
		}
		followUp(s, i, fmt.Sprintf("❌ Error creating topic: %v", err), true)
		return
	}

	followUp(s, i, "🧠 Topic created successfully, but without questions.", true)
}

func (b *Bot) handleUploadTopic(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	deferReply(s, i, true)

	topicName, attachment, ok := b.uploadArguments(s, i)
	if !ok {
		return
	}

	pdfURL, err := b.storePDF(i.GuildID, topicName, attachment)
	if err != nil {
		slog.Error("❌ Error saving PDF", "guild_id", i.GuildID, "topic", topicName, "error", err)
		followUp(s, i, "❌ Error saving the PDF.", true)
		return
	}

	err = b.deps.Pipeline.GenerateQuestionsFromPDF(
		context.Background(), topicName, "", i.GuildID, pdfURL,
		defaultUploadQuantity, models.KindTrueFalse,
	)
	if err != nil {
		b.reportPipelineError(s, i, topicName, err)
		return
	}

	followUp(s, i, "🧠 Questions successfully generated from the PDF.", true)
}

func (b *Bot) handleGenerateQuestions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	deferReply(s, i, true)

	opts := optionMap(i)
	title := opts["topic"].StringValue()
	quantity := int(opts["qty"].IntValue())
	kind := models.QuestionKind(opts["type"].StringValue())

	if quantity <= 0 {
		followUp(s, i, "❌ Quantity must be a positive number.", true)
		return
	}

	topic, err := b.deps.Topics.TopicByTitle(i.GuildID, title)
	if err != nil {
		if errors.Is(err, repositories.ErrTopicNotFound) {
			followUp(s, i, fmt.Sprintf("❌ Topic `%s` not found.", title), true)
			return
		}
		followUp(s, i, "❌ Error loading the topic.", true)
		return
	}

	err = b.deps.Pipeline.GenerateQuestionsFromPDF(
		context.Background(), topic.Title, topic.ID, i.GuildID,
		topic.DocumentURL, quantity, kind,
	)
	if err != nil {
		b.reportPipelineError(s, i, title, err)
		return
	}

	followUp(s, i, fmt.Sprintf("📭 Questions generated from `%s`", topic.Title), true)
}

// uploadArguments extracts and validates the topic name and PDF
// attachment shared by both upload commands.
func (b *Bot) uploadArguments(s *discordgo.Session, i *discordgo.InteractionCreate) (string, *discordgo.MessageAttachment, bool) {
	opts := optionMap(i)
	topicName := strings.TrimSpace(opts["topic_name"].StringValue())

	attachmentID, _ := opts["file"].Value.(string)
	attachment := i.ApplicationCommandData().Resolved.Attachments[attachmentID]
	if attachment == nil {
		followUp(s, i, "❌ Please attach a PDF file along with the command.", true)
		return "", nil, false
	}

	if !strings.HasSuffix(strings.ToLower(attachment.Filename), ".pdf") {
		followUp(s, i, "❌ Only PDF files are allowed.", true)
		return "", nil, false
	}

	return topicName, attachment, true
}

// storePDF copies the attachment into blob storage and returns the
// stable URL. Without an uploader the attachment URL is used as-is.
func (b *Bot) storePDF(guildID, topicName string, attachment *discordgo.MessageAttachment) (string, error) {
	if b.deps.Uploader == nil {
		return attachment.URL, nil
	}

	resp, err := http.Get(attachment.URL)
	if err != nil {
		return "", fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to download attachment: status %d", resp.StatusCode)
	}

	objectName := fmt.Sprintf("%s/%s.pdf", guildID, topicName)
	return b.deps.Uploader.Upload(context.Background(), objectName, resp.Body)
}

// reportPipelineError tells the user which stage failed, without
// leaking internals.
func (b *Bot) reportPipelineError(s *discordgo.Session, i *discordgo.InteractionCreate, topic string, err error) {
	slog.Error("❌ Question generation failed",
		"guild_id", i.GuildID,
		"topic", topic,
		"error", err,
		"operation", "question_generation_error")

	switch {
	case errors.Is(err, repositories.ErrDuplicateTopic):
		followUp(s, i, fmt.Sprintf("❌ A topic named `%s` already exists.", topic), true)
	case errors.Is(err, quizgen.ErrExtraction):
		followUp(s, i, "❌ The PDF could not be read.", true)
	case errors.Is(err, quizgen.ErrParse):
		followUp(s, i, "❌ The generated questions could not be parsed. Try again.", true)
	default:
		followUp(s, i, "❌ Error generating questions.", true)
	}
}
