package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/sppa/internal/catalog"
)

// A suggestion session against the mock: one draft, one rate limit, then
// an empty queue.
func TestMockProvider_Queue(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"topic":"Market day","prompt":"Describe your local market."}`),
			Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		},
		MockResponse{Err: &ErrRateLimit{}},
	)
	if mock.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", mock.ModelID())
	}

	resp, err := mock.Generate(context.Background(), Ask("sys", "Task: Description", nil))
	if err != nil {
		t.Fatalf("first draft: %v", err)
	}
	if resp.Usage.TotalTokens != 15 || resp.StopReason != StopEnd || resp.Model != "mock" {
		t.Errorf("response = %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Ask("sys", "Task: Instructions", nil)); !errors.As(err, &rl) {
		t.Fatalf("second call: expected ErrRateLimit, got %T (%v)", err, err)
	}

	var down *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &down) {
		t.Fatalf("drained queue: expected ErrProviderUnavailable, got %T (%v)", err, err)
	}

	if mock.CallCount() != 3 {
		t.Fatalf("CallCount = %d, want 3", mock.CallCount())
	}
	if got := mock.Calls[1].Messages[0].Content; got != "Task: Instructions" {
		t.Errorf("second call message = %q", got)
	}
}

func TestTag(t *testing.T) {
	ctx := context.Background()
	if got := TagFrom(ctx); got != (Tag{Purpose: "untagged"}) {
		t.Fatalf("empty tag = %+v", got)
	}

	want := Tag{Purpose: "task-prompt", SessionID: "9b2f", Task: "Instructions"}
	if got := TagFrom(WithTag(ctx, want)); got != want {
		t.Fatalf("tag = %+v, want %+v", got, want)
	}
}

func suggestionRequest(task string, used ...string) Request {
	msg := "Task: " + task + "\nTarget language: Tagalog\n\nAlready used in this interview:\n"
	if len(used) == 0 {
		msg += "None"
	}
	for i, u := range used {
		msg += fmt.Sprintf("%d. %s\n", i+1, u)
	}
	return Request{Messages: []Message{{Role: RoleUser, Content: msg}}}
}

func TestOfflineProvider(t *testing.T) {
	p := NewOfflineProvider()
	ctx := context.Background()

	resp, err := p.Generate(ctx, suggestionRequest(catalog.TaskNarrationPast))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var first cannedPrompt
	if err := json.Unmarshal(resp.Content, &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Topic == "" || first.Prompt == "" || resp.Usage.InputTokens == 0 {
		t.Fatalf("response = %s usage %+v", resp.Content, resp.Usage)
	}

	resp, err = p.Generate(ctx, suggestionRequest(catalog.TaskNarrationPast, first.Topic))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	var second cannedPrompt
	_ = json.Unmarshal(resp.Content, &second)
	if second.Topic == first.Topic {
		t.Errorf("offline mock repeated used topic %q", first.Topic)
	}

	if _, err := p.Generate(ctx, suggestionRequest("Juggling")); err == nil {
		t.Error("expected error for a task without drafts")
	}

	// Queued responses still win.
	p.AddResponse(MockResponse{Content: json.RawMessage(`{"topic":"x","prompt":"y"}`)})
	resp, _ = p.Generate(ctx, suggestionRequest(catalog.TaskNarrationPast))
	if string(resp.Content) != `{"topic":"x","prompt":"y"}` {
		t.Errorf("queued response = %s", resp.Content)
	}
}

func TestOfflinePrompts_CoverCatalog(t *testing.T) {
	for _, def := range catalog.Tasks() {
		drafts := offlinePrompts[def.Name]
		if len(drafts) < 2 {
			t.Errorf("%s: %d offline drafts, want 2", def.Name, len(drafts))
		}
		for _, d := range drafts {
			if d.Topic == "" || d.Prompt == "" {
				t.Errorf("%s: empty draft %+v", def.Name, d)
			}
		}
	}
}
