package questiongen

// Config controls the behavior of the LLMSource.
type Config struct {
	// Validators run in order over every batch; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response. It must fit a
	// full batch of MaxQuestionCount questions.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxHistory is the maximum number of prior questions listed in the
	// prompt for deduplication. Zero means no limit.
	MaxHistory int

	// MaxAttempts is how many times a batch is requested when validation
	// fails with a retryable error.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionCountValidator{Want: OptionsPerQuestion},
			&DuplicateValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
		MaxHistory:  60,
		MaxAttempts: 2,
	}
}
