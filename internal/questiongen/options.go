package questiongen

import "strings"

// OptionsPerQuestion is the number of options requested for every question.
const OptionsPerQuestion = 4

// OptionCountValidator checks that every question has exactly Want
// distinct, non-empty options.
type OptionCountValidator struct {
	Want int
}

func (v *OptionCountValidator) Name() string { return "option-count" }

func (v *OptionCountValidator) Validate(batch []Record, _ GenerateInput) *ValidationError {
	for i, r := range batch {
		if len(r.Options) != v.Want {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   "expected exactly 4 options",
				Retryable: true,
			}
		}
		seen := make(map[string]bool, len(r.Options))
		for _, o := range r.Options {
			key := strings.TrimSpace(o)
			if key == "" || seen[key] {
				return &ValidationError{
					Validator: v.Name(),
					Index:     i,
					Message:   "options must be non-empty and unique",
					Retryable: true,
				}
			}
			seen[key] = true
		}
	}
	return nil
}
