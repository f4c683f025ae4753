package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz generator that creates multiple-choice trivia questions.

Rules:
- Each question has exactly 4 unique options.
- CorrectAnswer must exactly match one of the options, character for character.
- Exactly one option is correct. Avoid questions that have more than one defensible answer.
- Explanation is one or two sentences stating why the answer is correct.
- Never repeat a question from the "already asked" list, either by wording or by answer.
- Return only JSON: an object with a "questions" array. No markdown, no commentary.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d questions about: %s\n", input.Count, input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", strings.ToLower(string(input.Difficulty)))
	b.WriteString("Make them gradually harder but in general keep them at this difficulty.\n")

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.History, cfg.MaxHistory))

	return b.String()
}
