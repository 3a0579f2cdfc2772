package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/llm"
)

func narrationInput() Input {
	return Input{
		Task:        catalog.TaskNarrationPast,
		Level:       catalog.Level2,
		Language:    "Tagalog",
		Notes:       "Works as a nurse in Manila. Enjoys hiking.",
		PriorTopics: []string{"Daily commute"},
	}
}

func TestSuggest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topic":" Memorable hike ","prompt":"Tell me about a hike you remember well, from start to finish."}`),
	})
	svc := New(mock, DefaultConfig())

	sug, err := svc.Suggest(context.Background(), narrationInput())
	require.NoError(t, err)
	assert.Equal(t, "Memorable hike", sug.Topic)
	assert.True(t, strings.HasPrefix(sug.Prompt, "Tell me about a hike"))

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, SuggestionSchema, req.Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, req.MaxTokens)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Task: Narration (Past)")
	assert.Contains(t, msg, catalog.InstructionFor(catalog.TaskNarrationPast))
	assert.Contains(t, msg, "Target language: Tagalog")
	assert.Contains(t, msg, "Enjoys hiking")
	assert.Contains(t, msg, "1. Daily commute")
}

// tagCapture records the Tag each call arrives with.
type tagCapture struct {
	*llm.MockProvider
	tags []llm.Tag
}

func (c *tagCapture) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	c.tags = append(c.tags, llm.TagFrom(ctx))
	return c.MockProvider.Generate(ctx, req)
}

func TestSuggest_TagsSessionAndTask(t *testing.T) {
	p := &tagCapture{MockProvider: llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topic":"Market day","prompt":"Tell me what you bought at the market last week."}`),
	})}
	svc := New(p, DefaultConfig())

	in := narrationInput()
	in.SessionID = "sess-17"
	_, err := svc.Suggest(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, p.tags, 1)
	assert.Equal(t, llm.Tag{Purpose: Purpose, SessionID: "sess-17", Task: catalog.TaskNarrationPast}, p.tags[0])
}

func TestSuggest_UnknownTask(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := New(mock, DefaultConfig())

	in := narrationInput()
	in.Task = "Juggling"
	_, err := svc.Suggest(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownTask)
	assert.Equal(t, 0, mock.CallCount())
}

func TestSuggest_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := New(mock, DefaultConfig())

	_, err := svc.Suggest(context.Background(), narrationInput())
	var unavailable *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestSuggest_Rejections(t *testing.T) {
	long := strings.Repeat("x", DefaultConfig().MaxPromptLen+1)
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty topic", `{"topic":"  ","prompt":"Tell me a story."}`, ErrEmptyTopic},
		{"empty prompt", `{"topic":"Hiking","prompt":""}`, ErrEmptyPrompt},
		{"too long", `{"topic":"Hiking","prompt":"` + long + `"}`, ErrPromptTooLong},
		{"repeated topic", `{"topic":"daily COMMUTE","prompt":"Tell me about your commute."}`, ErrRepeatedTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			_, err := New(mock, DefaultConfig()).Suggest(context.Background(), narrationInput())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildPriorTopics(t *testing.T) {
	assert.Equal(t, "None", buildPriorTopics(nil, 5))
	assert.Equal(t, "None", buildPriorTopics([]string{" ", ""}, 5))
	assert.Equal(t, "1. c\n2. d", buildPriorTopics([]string{"a", "b", "c", "d"}, 2))
}

func TestBuildUserMessage_NoNotes(t *testing.T) {
	in := narrationInput()
	in.Notes = ""
	in.PriorTopics = nil
	msg := buildUserMessage(in, DefaultConfig())
	assert.Contains(t, msg, "Warm-up notes:\nNone")
	assert.Contains(t, msg, "Already used in this interview:\nNone")
}
