package questiongen

import (
	"testing"

	"github.com/abhisek/triviaz/internal/quiz"
)

func rec(q string, opts []string, correct string) Record {
	return Record{Question: q, Options: opts, CorrectAnswer: correct}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "test-validator", Index: 2, Message: "something went wrong"}
	expected := `validator "test-validator": question 3: something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}

	err.Index = -1
	expected = `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "option-count", "duplicate"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestStructuralValidator(t *testing.T) {
	four := []string{"a", "b", "c", "d"}
	tests := []struct {
		name    string
		batch   []Record
		wantErr bool
	}{
		{"valid", []Record{rec("q?", four, "b")}, false},
		{"empty batch", nil, true},
		{"empty question", []Record{rec(" ", four, "a")}, true},
		{"empty answer", []Record{rec("q?", four, "")}, true},
		{"answer not an option", []Record{rec("q?", four, "e")}, true},
		{"answer with padding", []Record{rec("q?", four, " a ")}, false},
	}
	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.batch, GenerateInput{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionCountValidator(t *testing.T) {
	v := &OptionCountValidator{Want: OptionsPerQuestion}
	tests := []struct {
		name    string
		opts    []string
		wantErr bool
	}{
		{"four unique", []string{"a", "b", "c", "d"}, false},
		{"three", []string{"a", "b", "c"}, true},
		{"five", []string{"a", "b", "c", "d", "e"}, true},
		{"duplicate", []string{"a", "b", "a ", "d"}, true},
		{"blank", []string{"a", "b", "", "d"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]Record{rec("q?", tt.opts, "a")}, GenerateInput{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateValidator_History(t *testing.T) {
	v := &DuplicateValidator{}
	input := GenerateInput{History: []quiz.Question{
		quiz.MustQuestion("What is  the capital of Peru?", []string{"Lima", "Cusco"}, "Lima", ""),
	}}

	err := v.Validate([]Record{rec("what is the capital of peru?", nil, "")}, input)
	if err == nil {
		t.Fatal("expected duplicate of history to fail")
	}
	if err.Index != 0 || !err.Retryable {
		t.Errorf("got %+v", err)
	}

	if err := v.Validate([]Record{rec("What is the capital of Chile?", nil, "")}, input); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFormatHistory(t *testing.T) {
	got := FormatHistory([]quiz.Question{
		quiz.MustQuestion("A?", []string{"1", "2"}, "1", ""),
		quiz.MustQuestion("B?", []string{"1", "2"}, "2", ""),
	})
	want := "Question: A? Answer: 1\nQuestion: B? Answer: 2\n"
	if got != want {
		t.Errorf("FormatHistory = %q, want %q", got, want)
	}
}
