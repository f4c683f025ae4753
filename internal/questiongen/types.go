package questiongen

import (
	"context"

	"github.com/abhisek/triviaz/internal/quiz"
)

// Source produces batches of trivia questions.
type Source interface {
	// Generate returns a validated batch for the given input. On any
	// failure it returns a *GenerationError and no questions.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// GenerateInput holds everything needed to request a batch.
type GenerateInput struct {
	// Topic is the free-form subject typed by the user.
	Topic string

	Difficulty quiz.Difficulty

	// Count is the number of questions to request.
	Count int

	// History holds questions already in the session. They are listed in
	// the prompt so the model avoids repeating them.
	History []quiz.Question
}

// Record is one question as returned by the model, before validation.
type Record struct {
	Question      string   `json:"Question"`
	Options       []string `json:"Options"`
	CorrectAnswer string   `json:"CorrectAnswer"`
	Explanation   string   `json:"Explanation"`
}

// batchOutput is the structured-output wrapper around the records.
type batchOutput struct {
	Questions []Record `json:"questions"`
}
