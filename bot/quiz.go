// bot/quiz.go - Interactive quiz session
package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"coursequiz/models"
	"coursequiz/repositories"

	"github.com/bwmarrin/discordgo"
)

const (
	quizSize          = 5
	quizAnswerTimeout = 60 * time.Second
)

func (b *Bot) handleQuiz(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	topic := opts["topic"].StringValue()

	all, err := b.deps.Topics.QuestionsByTopicTitle(i.GuildID, topic)
	if err != nil && !errors.Is(err, repositories.ErrTopicNotFound) {
		slog.Error("❌ Error loading quiz questions", "guild_id", i.GuildID, "topic", topic, "error", err)
		respond(s, i, "❌ An error occurred during the quiz.", true)
		return
	}

	questions := answerable(all)
	if len(questions) == 0 {
		respond(s, i, fmt.Sprintf("❌ No questions registered for topic `%s`.", topic), true)
		return
	}

	questions = sample(questions, quizSize)

	respond(s, i, "📋 Starting the quiz...", true)

	for idx, q := range questions {
		text := fmt.Sprintf("**%d. %s**", idx+1, q.Text)
		if q.Kind == models.KindMultipleChoice {
			for _, letter := range []string{"A", "B", "C", "D"} {
				if alt, ok := q.Alternatives[letter]; ok {
					text += fmt.Sprintf("\n%s. %v", letter, alt)
				}
			}
		}
		followUp(s, i, text, true)
	}

	followUp(s, i, "📝 Answer every question in a single message (e.g. `TFTFT` or `ABCDC`):", true)

	answer, ok := b.collectAnswer(s, i, len(questions))
	if !ok {
		followUp(s, i, "⏰ Time is up. Try again.", true)
		return
	}

	correct := 0
	var sb strings.Builder
	sb.WriteString("\n📊 Results:\n")
	for idx, q := range questions {
		expected := expectedToken(q)
		got := string(answer[idx])

		isCorrect := got == expected
		if isCorrect {
			fmt.Fprintf(&sb, "✅ %d. Correct\n", idx+1)
			correct++
		} else {
			fmt.Fprintf(&sb, "❌ %d. Incorrect (Correct answer: %s)\n", idx+1, expected)
		}

		if err := b.deps.Questions.RecordAnswer(q.ID, isCorrect); err != nil {
			slog.Error("❌ Error updating question counters", "question_id", q.ID, "error", err)
		}
	}
	fmt.Fprintf(&sb, "\n🏁 You got %d out of %d questions right.", correct, len(questions))
	followUp(s, i, sb.String(), true)

	b.recordQuizOutcome(i, topic, questions, correct)
}

// collectAnswer waits for one message from the quiz taker, in the same
// channel, whose length matches the question count.
func (b *Bot) collectAnswer(s *discordgo.Session, i *discordgo.InteractionCreate, length int) (string, bool) {
	userID := interactionUserID(i)
	answers := make(chan string, 1)

	remove := s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.ID != userID || m.ChannelID != i.ChannelID {
			return
		}
		content := strings.ToUpper(strings.TrimSpace(m.Content))
		if len(content) != length {
			return
		}
		select {
		case answers <- content:
		default:
		}
	})
	defer remove()

	select {
	case answer := <-answers:
		return answer, true
	case <-time.After(quizAnswerTimeout):
		return "", false
	}
}

// recordQuizOutcome runs the post-quiz bookkeeping: history entry, flat
// statistic, XP delta and streak. Each step logs and moves on if it
// fails; a finished quiz is never surfaced to the user as an error.
func (b *Bot) recordQuizOutcome(i *discordgo.InteractionCreate, topicTitle string, questions []models.Question, correct int) {
	userID := interactionUserID(i)
	userName := interactionUserName(i)
	total := len(questions)

	topicID := ""
	if topic, err := b.deps.Topics.TopicByTitle(i.GuildID, topicTitle); err == nil {
		topicID = topic.ID
	}

	kinds := distinctKinds(questions)
	if err := b.deps.Users.RecordAttempt(i.GuildID, userID, userName, topicID, correct, total, kinds); err != nil {
		slog.Error("❌ Error recording attempt", "guild_id", i.GuildID, "user_id", userID, "error", err)
	}

	b.deps.Stats.SaveStatistic(i.GuildID, userID, userName, topicTitle, correct, total)

	// Net score: each wrong answer cancels a right one.
	delta := correct - (total - correct)
	if _, err := b.deps.Levels.AddXP(i.GuildID, userID, delta); err != nil {
		slog.Error("❌ Error updating XP", "guild_id", i.GuildID, "user_id", userID, "error", err)
	}

	if _, err := b.deps.Levels.UpdateStreak(i.GuildID, userID, correct == total); err != nil {
		slog.Error("❌ Error updating streak", "guild_id", i.GuildID, "user_id", userID, "error", err)
	}
}

// answerable filters out kinds that cannot be graded from a single
// answer token.
func answerable(questions []models.Question) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.Kind == models.KindTrueFalse || q.Kind == models.KindMultipleChoice {
			out = append(out, q)
		}
	}
	return out
}

func sample(questions []models.Question, n int) []models.Question {
	if len(questions) <= n {
		rand.Shuffle(len(questions), func(a, b int) {
			questions[a], questions[b] = questions[b], questions[a]
		})
		return questions
	}

	picked := make([]models.Question, 0, n)
	for _, idx := range rand.Perm(len(questions))[:n] {
		picked = append(picked, questions[idx])
	}
	return picked
}

// expectedToken maps a question's stored answer to the single character
// the user types.
func expectedToken(q models.Question) string {
	if q.Kind == models.KindMultipleChoice {
		return strings.ToUpper(q.Answer)
	}
	if strings.HasPrefix(strings.ToUpper(q.Answer), "T") {
		return "T"
	}
	return "F"
}

func distinctKinds(questions []models.Question) []models.QuestionKind {
	seen := make(map[models.QuestionKind]struct{})
	kinds := make([]models.QuestionKind, 0, 2)
	for _, q := range questions {
		if _, ok := seen[q.Kind]; ok {
			continue
		}
		seen[q.Kind] = struct{}{}
		kinds = append(kinds, q.Kind)
	}
	return kinds
}
