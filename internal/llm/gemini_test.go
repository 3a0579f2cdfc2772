package llm

import (
	"slices"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash-lite", "gemini-2.5-flash-lite"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// The suggestion schema carries an optional warm-up list next to the
// required topic and prompt; Gemini needs all three translated.
func TestBuildGeminiSchema_Suggestion(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic":   map[string]any{"type": "string"},
			"prompt":  map[string]any{"type": "string"},
			"level":   map[string]any{"type": "integer"},
			"rating":  map[string]any{"type": "string", "enum": []any{"breakdown", "partial", "minimal", "fully"}},
			"warm_up": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"topic", "prompt"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	want := map[string]string{
		"topic":   "STRING",
		"prompt":  "STRING",
		"level":   "INTEGER",
		"rating":  "STRING",
		"warm_up": "ARRAY",
	}
	if len(schema.Properties) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(schema.Properties))
	}
	for name, typ := range want {
		if got := string(schema.Properties[name].Type); got != typ {
			t.Errorf("%s type = %s, want %s", name, got, typ)
		}
	}
	if len(schema.Properties["rating"].Enum) != 4 {
		t.Errorf("expected 4 rating values, got %d", len(schema.Properties["rating"].Enum))
	}
	if schema.Properties["warm_up"].Items.Type != "STRING" {
		t.Errorf("warm_up items = %s, want STRING", schema.Properties["warm_up"].Items.Type)
	}
	if len(schema.Required) != 2 || schema.Required[0] != "topic" || schema.Required[1] != "prompt" {
		t.Errorf("required = %v", schema.Required)
	}
	wantOrder := []string{"topic", "prompt", "level", "rating", "warm_up"}
	if !slices.Equal(schema.PropertyOrdering, wantOrder) {
		t.Errorf("property ordering = %v, want %v", schema.PropertyOrdering, wantOrder)
	}
}

func TestGeminiUsage_CountsThinking(t *testing.T) {
	u := geminiUsage(&genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     120,
		CandidatesTokenCount: 30,
		ThoughtsTokenCount:   50,
	})
	if u.InputTokens != 120 || u.OutputTokens != 80 || u.TotalTokens != 200 {
		t.Errorf("usage = %+v", u)
	}
	if geminiUsage(nil) != (Usage{}) {
		t.Error("nil metadata should give zero usage")
	}
}

func TestGeminiBlocked(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"finished", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}}, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"safety", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}, string(genai.FinishReasonSafety)},
		{"prompt blocked", &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety}}, string(genai.BlockedReasonSafety)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geminiBlocked(tt.result); got != tt.want {
				t.Errorf("geminiBlocked = %q, want %q", got, tt.want)
			}
		})
	}
}
