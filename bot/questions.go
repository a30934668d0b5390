// bot/questions.go - Single-question CRUD commands
package bot

import (
	"errors"
	"fmt"
	"strings"

	"coursequiz/models"
	"coursequiz/repositories"

	"github.com/bwmarrin/discordgo"
)

// questionsPerPage matches the page size of the old paginated view.
const questionsPerPage = 10

func (b *Bot) handleAddQuestion(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	opts := optionMap(i)
	topic := opts["topic"].StringValue()
	question := opts["question"].StringValue()
	answer := opts["answer"].StringValue()

	var normalized string
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "true", "t", "v":
		normalized = "True"
	case "false", "f":
		normalized = "False"
	default:
		respond(s, i, "❌ Answer must be 'True' or 'False'", true)
		return
	}

	id, err := b.deps.Questions.AddQuestion(i.GuildID, topic, question, normalized, models.KindTrueFalse)
	if err != nil {
		if errors.Is(err, repositories.ErrTopicNotFound) {
			respond(s, i, fmt.Sprintf("❌ Topic `%s` not found.", topic), true)
			return
		}
		respond(s, i, fmt.Sprintf("❌ Failed to add question: %v", err), true)
		return
	}

	respond(s, i, fmt.Sprintf("✅ Question added to `%s` with ID: `%s`.", topic, id), true)
}

func (b *Bot) handleListQuestions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	opts := optionMap(i)
	topic := opts["topic"].StringValue()

	page := 1
	if opt, ok := opts["page"]; ok {
		page = int(opt.IntValue())
		if page < 1 {
			page = 1
		}
	}

	questions, err := b.deps.Questions.QuestionsByTopic(i.GuildID, topic)
	if err != nil {
		if errors.Is(err, repositories.ErrTopicNotFound) {
			respond(s, i, fmt.Sprintf("❌ Topic `%s` not found.", topic), true)
			return
		}
		respond(s, i, "❌ Failed to list questions.", true)
		return
	}

	if len(questions) == 0 {
		respond(s, i, fmt.Sprintf("📂 No questions registered for topic `%s`.", topic), true)
		return
	}

	totalPages := (len(questions)-1)/questionsPerPage + 1
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * questionsPerPage
	end := start + questionsPerPage
	if end > len(questions) {
		end = len(questions)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 Questions for `%s` (Page %d/%d):\n\n", topic, page, totalPages)
	for idx, q := range questions[start:end] {
		fmt.Fprintf(&sb, "%d. %s (Answer: %s, ID: `%s`)\n", start+idx+1, q.Text, q.Answer, q.ID)
	}

	respond(s, i, sb.String(), true)
}

func (b *Bot) handleDeleteQuestion(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireProfessor(s, i) {
		return
	}

	opts := optionMap(i)
	topic := opts["topic"].StringValue()
	id := opts["id"].StringValue()

	err := b.deps.Questions.DeleteQuestion(i.GuildID, topic, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTopicNotFound):
			respond(s, i, fmt.Sprintf("❌ Topic `%s` not found.", topic), true)
		case errors.Is(err, repositories.ErrQuestionNotFound):
			respond(s, i, fmt.Sprintf("❌ No question with ID `%s` in `%s`.", id, topic), true)
		default:
			respond(s, i, fmt.Sprintf("❌ Failed to delete question: %v", err), true)
		}
		return
	}

	respond(s, i, fmt.Sprintf("🗑️ Deleted question with ID `%s` from `%s`", id, topic), true)
}
