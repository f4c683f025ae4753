package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestion is returned when a question record violates the
// question invariants.
var ErrInvalidQuestion = errors.New("invalid question")

// MinOptions is the smallest number of options a question may carry.
const MinOptions = 2

// Question is one immutable trivia item. The zero value is not a valid
// question; use NewQuestion.
type Question struct {
	text        string
	options     []string
	correct     string
	explanation string
}

// NewQuestion validates and builds a Question. Surrounding whitespace is
// trimmed from every field before checks run.
//
// Invariants:
//   - text is non-empty
//   - at least MinOptions options, all non-empty and unique
//   - correct matches exactly one option
func NewQuestion(text string, options []string, correct, explanation string) (Question, error) {
	text = strings.TrimSpace(text)
	correct = strings.TrimSpace(correct)
	explanation = strings.TrimSpace(explanation)

	if text == "" {
		return Question{}, fmt.Errorf("%w: question text is empty", ErrInvalidQuestion)
	}
	if len(options) < MinOptions {
		return Question{}, fmt.Errorf("%w: %q has %d options, need at least %d",
			ErrInvalidQuestion, text, len(options), MinOptions)
	}

	opts := make([]string, len(options))
	seen := make(map[string]bool, len(options))
	for i, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return Question{}, fmt.Errorf("%w: %q has an empty option", ErrInvalidQuestion, text)
		}
		if seen[o] {
			return Question{}, fmt.Errorf("%w: %q has duplicate option %q", ErrInvalidQuestion, text, o)
		}
		seen[o] = true
		opts[i] = o
	}

	if !seen[correct] {
		return Question{}, fmt.Errorf("%w: correct answer %q is not one of the options of %q",
			ErrInvalidQuestion, correct, text)
	}

	return Question{
		text:        text,
		options:     opts,
		correct:     correct,
		explanation: explanation,
	}, nil
}

// MustQuestion is like NewQuestion but panics on invalid input.
// Intended for fixtures and tests.
func MustQuestion(text string, options []string, correct, explanation string) Question {
	q, err := NewQuestion(text, options, correct, explanation)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Question) Text() string          { return q.text }
func (q Question) CorrectOption() string { return q.correct }
func (q Question) Explanation() string   { return q.explanation }

// Options returns a copy of the ordered options.
func (q Question) Options() []string {
	out := make([]string, len(q.options))
	copy(out, q.options)
	return out
}

// IsCorrect reports whether selected is exactly the correct option.
func (q Question) IsCorrect(selected string) bool {
	return selected == q.correct
}

// OptionIndex returns the position of option in the options list, or -1.
func (q Question) OptionIndex(option string) int {
	for i, o := range q.options {
		if o == option {
			return i
		}
	}
	return -1
}
