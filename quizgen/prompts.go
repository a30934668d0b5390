// quizgen/prompts.go - Prompt templates per question kind
package quizgen

import (
	"fmt"

	"coursequiz/models"
)

// maxContentChars caps how much extracted text goes into the prompt, to
// keep the request inside the model's context window. The cut is a raw
// character cut, not sentence-aware.
const maxContentChars = 4000

// BuildPrompt renders the generation prompt for a topic. Unknown kinds
// fall back to the default template. Every template demands exactly
// quantity items as a JSON array with a fixed per-item schema.
func BuildPrompt(topic, text string, quantity int, kind models.QuestionKind) string {
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}

	switch kind {
	case models.KindMultipleChoice:
		return promptMultipleChoice(topic, text, quantity)
	case models.KindTrueFalse:
		return promptTrueFalse(topic, text, quantity)
	case models.KindShortAnswer:
		return promptShortAnswer(topic, text, quantity)
	default:
		return promptDefault(topic, text, quantity)
	}
}

func promptMultipleChoice(topic, text string, qty int) string {
	return fmt.Sprintf(`You are a question generator. Generate **exactly %d** multiple-choice questions based on the content below, and **do not generate any extra questions**.

Each question must have four options (A, B, C, D), and only one correct answer. The correct answer should be indicated by the letter.

Output format in JSON:
[
{
    "question": "Question text...",
    "options": {
        "A": "Option A",
        "B": "Option B",
        "C": "Option C",
        "D": "Option D"
    },
    "answer": "B"
},
...
]  # Exactly %d objects like this

Topic: %s

Content:
%s
`, qty, qty, topic, text)
}

func promptTrueFalse(topic, text string, qty int) string {
	return fmt.Sprintf(`You are a question generator. Generate **exactly %d** true/false questions based on the content below, and **do not generate any extra questions**.

Output format in JSON:
[
{
    "question": "Question text...",
    "answer": "True"  # or "False"
},
...
]  # Exactly %d objects like this

Topic: %s

Content:
%s
`, qty, qty, topic, text)
}

func promptShortAnswer(topic, text string, qty int) string {
	return fmt.Sprintf(`You are a question generator. Based on the content below, generate **exactly %d short-answer questions**, and do not generate any extras. Only %d.
Return in JSON format like this:
[
{
    "question": "...",
    "answer": "..."
},
...
]

Topic: %s

Content:
%s
`, qty, qty, topic, text)
}

func promptDefault(topic, text string, qty int) string {
	return fmt.Sprintf(`You are a question generator. Based on the content below, generate **exactly %d varied questions**, and do not generate any extras. Only %d.
Return in JSON format like this:
[
{
    "question": "...",
    "answer": "..."
},
...
]

Topic: %s

Content:
%s
`, qty, qty, topic, text)
}
