package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/quiz"
)

// Purpose labels generation calls in the LLM event log.
const Purpose = "quiz-gen"

// EmptyTopicMessage is shown when generation is requested without a topic.
const EmptyTopicMessage = "Please enter a topic to generate a question."

// LLMSource implements Source using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMSource with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMSource {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMSource{provider: provider, config: cfg}
}

// Generate requests a batch and returns it only if every record is valid.
func (g *LLMSource) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		questions, err := g.generateOnce(ctx, req, input)
		if err == nil {
			return questions, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, lastErr
}

func (g *LLMSource) generateOnce(ctx context.Context, req llm.Request, input GenerateInput) ([]quiz.Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		// The provider rejected output that did not match BatchSchema.
		return nil, &GenerationError{
			Stage:   StageParse,
			Message: "Failed to parse generated questions",
			Err:     err,
		}
	}
	if err != nil {
		return nil, &GenerationError{
			Stage:   StageTransport,
			Message: "Failed to generate questions",
			Err:     err,
		}
	}

	records, err := parseBatch(resp.Content)
	if err != nil {
		return nil, &GenerationError{
			Stage:   StageParse,
			Message: "Failed to parse generated questions",
			Err:     err,
		}
	}

	// Extra questions beyond the request are dropped.
	if len(records) > input.Count {
		records = records[:input.Count]
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(records, input); verr != nil {
			return nil, &GenerationError{
				Stage:   StageValidate,
				Message: "Generated questions failed validation",
				Err:     verr,
			}
		}
	}

	questions := make([]quiz.Question, 0, len(records))
	for _, r := range records {
		q, err := quiz.NewQuestion(r.Question, r.Options, r.CorrectAnswer, r.Explanation)
		if err != nil {
			return nil, &GenerationError{
				Stage:   StageValidate,
				Message: "Generated questions failed validation",
				Err:     err,
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func checkInput(input GenerateInput) error {
	if strings.TrimSpace(input.Topic) == "" {
		return &GenerationError{Stage: StageInput, Message: EmptyTopicMessage}
	}
	if _, err := quiz.ParseDifficulty(string(input.Difficulty)); err != nil {
		return &GenerationError{Stage: StageInput, Message: "Invalid difficulty", Err: err}
	}
	if input.Count < quiz.MinQuestionCount || input.Count > quiz.MaxQuestionCount {
		return &GenerationError{
			Stage:   StageInput,
			Message: fmt.Sprintf("Question count must be between %d and %d", quiz.MinQuestionCount, quiz.MaxQuestionCount),
		}
	}
	return nil
}
