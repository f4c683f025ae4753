package questiongen

import "fmt"

// Validator checks a generated batch for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g.
	// "structural" or "duplicate".
	Name() string

	// Validate checks the batch and returns nil if it passes.
	Validate(batch []Record, input GenerateInput) *ValidationError
}

// ValidationError describes why a batch failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Index     int    // Offending record, or -1 for the whole batch
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index+1, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
