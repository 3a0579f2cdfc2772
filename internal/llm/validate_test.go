package llm

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
)

func ratedTaskSchema() *Schema {
	return &Schema{
		Name:        "rated-task",
		Description: "A rated speaking task",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"task":   map[string]any{"type": "string"},
				"level":  map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
				"rating": map[string]any{"type": "string", "enum": []any{"breakdown", "partial", "minimal", "fully"}},
			},
			"required": []any{"task", "level"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"task":"Instructions","level":2,"rating":"partial"}`, false},
		{"optional omitted", `{"task":"Hypothesizing","level":3}`, false},
		{"missing required", `{"task":"Instructions"}`, true},
		{"wrong type", `{"task":"Instructions","level":"two"}`, true},
		{"out of range", `{"task":"Instructions","level":4}`, true},
		{"invalid enum", `{"task":"Instructions","level":1,"rating":"great"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(ratedTaskSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested-round",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"learner": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"language": map[string]any{"type": "string"},
					},
					"required": []any{"language"},
				},
				"ratings": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"learner", "ratings"},
		},
	}

	valid := json.RawMessage(`{"learner":{"language":"Tagalog"},"ratings":[3,2,0]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"learner":{"language":"Tagalog"},"ratings":["high","low"]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestValidateResponse_FieldProblems(t *testing.T) {
	schema := &Schema{
		Name: "topic-prompt",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":  map[string]any{"type": "string"},
				"prompt": map[string]any{"type": "string"},
			},
			"required":             []any{"topic", "prompt"},
			"additionalProperties": false,
		},
	}

	err := validateResponse(schema, json.RawMessage(`{"topic":7}`))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	want := []string{"response: missing property 'prompt'", "topic: got number, want string"}
	for _, w := range want {
		if !slices.Contains(invErr.Problems, w) {
			t.Errorf("problems %q missing %q", invErr.Problems, w)
		}
	}
	if len(invErr.Problems) != len(want) {
		t.Errorf("problems = %q", invErr.Problems)
	}
	if !strings.Contains(invErr.Error(), "topic: got number, want string") {
		t.Errorf("Error() = %q", invErr.Error())
	}

	// Malformed JSON has no field problems.
	err = validateResponse(schema, json.RawMessage(`{"topic":`))
	if !errors.As(err, &invErr) || len(invErr.Problems) != 0 {
		t.Errorf("malformed: %v", err)
	}
}
