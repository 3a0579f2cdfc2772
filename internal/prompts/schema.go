package prompts

import "github.com/abhisek/sppa/internal/llm"

// SuggestionSchema defines the JSON schema for prompt suggestion responses.
var SuggestionSchema = &llm.Schema{
	Name:        "task-prompt",
	Description: "A topic and examiner prompt for one oral proficiency task",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "A short topic label, at most a few words",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "What the examiner says to elicit the task, in English",
			},
		},
		"required":             []any{"topic", "prompt"},
		"additionalProperties": false,
	},
}
