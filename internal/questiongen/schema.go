package questiongen

import "github.com/abhisek/triviaz/internal/llm"

// BatchSchema defines the JSON schema for a batch of trivia questions.
// Strict structured output needs an object at the top level, so the list
// is wrapped in a "questions" property.
var BatchSchema = &llm.Schema{
	Name:        "trivia-batch",
	Description: "A batch of multiple-choice trivia questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The requested questions, gradually harder",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"Question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the player",
						},
						"Options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 unique answer options",
						},
						"CorrectAnswer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied exactly from Options",
						},
						"Explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining the answer",
						},
					},
					"required":             []any{"Question", "Options", "CorrectAnswer", "Explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
