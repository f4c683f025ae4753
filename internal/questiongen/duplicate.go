package questiongen

import (
	"strings"

	"github.com/abhisek/triviaz/internal/quiz"
)

// DuplicateValidator rejects a batch that repeats a question, either
// within itself or from the session history. Texts are compared after
// case folding and whitespace collapsing.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(batch []Record, input GenerateInput) *ValidationError {
	seen := make(map[string]bool, len(input.History)+len(batch))
	for _, q := range input.History {
		seen[normalizeText(q.Text())] = true
	}
	for i, r := range batch {
		key := normalizeText(r.Question)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   "question repeats an earlier question",
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// unseen returns the questions of batch whose text is not in history.
func unseen(batch, history []quiz.Question) []quiz.Question {
	seen := make(map[string]bool, len(history))
	for _, q := range history {
		seen[normalizeText(q.Text())] = true
	}
	out := make([]quiz.Question, 0, len(batch))
	for _, q := range batch {
		key := normalizeText(q.Text())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}
