package questiongen

import "fmt"

// Stage names where in the pipeline a generation failed.
type Stage string

const (
	StageInput     Stage = "input"
	StageTransport Stage = "transport"
	StageParse     Stage = "parse"
	StageValidate  Stage = "validate"
)

// GenerationError is returned for every failed batch. It is always
// recoverable: the caller keeps its session as it was and may retry.
type GenerationError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }
