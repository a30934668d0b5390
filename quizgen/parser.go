// quizgen/parser.go - Model output parsing and validation
package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"coursequiz/models"
)

// rawQuestion mirrors the JSON shapes the prompt templates ask for.
// Multiple-choice items carry "options"; some models emit
// "alternatives" instead, so both are accepted.
type rawQuestion struct {
	Question     string            `json:"question"`
	Answer       string            `json:"answer"`
	Options      map[string]string `json:"options"`
	Alternatives map[string]string `json:"alternatives"`
}

var multipleChoiceLetters = []string{"A", "B", "C", "D"}

// ParseQuestions decodes the model output as a JSON array of question
// records, truncates to the first quantity items, and validates every
// kept item for the given kind. Excess items the model produced despite
// instructions are dropped silently; under-generation is accepted
// silently. Any decode or validation failure is an ErrParse.
func ParseQuestions(raw string, quantity int, kind models.QuestionKind) ([]models.GeneratedQuestion, error) {
	cleaned := stripCodeFence(raw)

	var items []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if len(items) > quantity {
		items = items[:quantity]
	}

	questions := make([]models.GeneratedQuestion, 0, len(items))
	for i, item := range items {
		q, err := validateQuestion(item, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrParse, i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func validateQuestion(item rawQuestion, kind models.QuestionKind) (models.GeneratedQuestion, error) {
	q := models.GeneratedQuestion{
		Question: strings.TrimSpace(item.Question),
		Answer:   strings.TrimSpace(item.Answer),
		Kind:     kind,
	}

	if q.Question == "" {
		return q, fmt.Errorf("missing question text")
	}
	if q.Answer == "" {
		return q, fmt.Errorf("missing answer")
	}

	switch kind {
	case models.KindTrueFalse:
		switch strings.ToLower(q.Answer) {
		case "true", "t", "v":
			q.Answer = "True"
		case "false", "f":
			q.Answer = "False"
		default:
			return q, fmt.Errorf("answer %q is not True or False", item.Answer)
		}

	case models.KindMultipleChoice:
		alternatives := item.Options
		if len(alternatives) == 0 {
			alternatives = item.Alternatives
		}

		q.Alternatives = make(map[string]string, len(multipleChoiceLetters))
		for _, letter := range multipleChoiceLetters {
			text, ok := alternatives[letter]
			if !ok || strings.TrimSpace(text) == "" {
				return q, fmt.Errorf("missing option %s", letter)
			}
			q.Alternatives[letter] = strings.TrimSpace(text)
		}

		q.Answer = strings.ToUpper(q.Answer)
		if _, ok := q.Alternatives[q.Answer]; !ok {
			return q, fmt.Errorf("answer %q is not one of the options", item.Answer)
		}
	}

	return q, nil
}

// stripCodeFence removes a single wrapping markdown fence pair, which
// chat models frequently add around JSON despite instructions.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
