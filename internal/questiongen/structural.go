package questiongen

import "strings"

const (
	maxQuestionLen    = 500
	maxOptionLen      = 200
	maxExplanationLen = 1000
)

// StructuralValidator checks that required fields are present and within
// length limits, and that the correct answer is one of the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(batch []Record, _ GenerateInput) *ValidationError {
	if len(batch) == 0 {
		return v.fail(-1, "no questions in response")
	}
	for i, r := range batch {
		switch {
		case strings.TrimSpace(r.Question) == "":
			return v.fail(i, "Question is empty")
		case len(r.Question) > maxQuestionLen:
			return v.fail(i, "Question exceeds 500 characters")
		case strings.TrimSpace(r.CorrectAnswer) == "":
			return v.fail(i, "CorrectAnswer is empty")
		case len(r.Explanation) > maxExplanationLen:
			return v.fail(i, "Explanation exceeds 1000 characters")
		}

		found := false
		for _, o := range r.Options {
			if len(o) > maxOptionLen {
				return v.fail(i, "option exceeds 200 characters")
			}
			if strings.TrimSpace(o) == strings.TrimSpace(r.CorrectAnswer) {
				found = true
			}
		}
		if !found {
			return v.fail(i, "CorrectAnswer does not match any option")
		}
	}
	return nil
}

func (v *StructuralValidator) fail(i int, msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Index: i, Message: msg, Retryable: true}
}
