package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/triviaz/internal/quiz"
)

// FormatHistory renders questions one per line as
// "Question: <text> Answer: <correct>".
func FormatHistory(history []quiz.Question) string {
	var b strings.Builder
	for _, q := range history {
		fmt.Fprintf(&b, "Question: %s Answer: %s\n", q.Text(), q.CorrectOption())
	}
	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(history []quiz.Question, max int) string {
	if len(history) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return strings.TrimRight(FormatHistory(history), "\n")
}
