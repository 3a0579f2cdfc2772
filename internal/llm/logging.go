package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/sppa/internal/store"
)

// LoggingProvider records every attempt in llm_request_events, tagged
// with the interview and task from the context Tag.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	now       func() time.Time
}

// WithLogging wraps p. name is the configured provider name, which the
// model ID alone does not reveal for OpenRouter.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	tag := TagFrom(ctx)
	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     tag.Purpose,
		SessionID:   tag.SessionID,
		Task:        tag.Task,
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = errorKind(err) + ": " + err.Error()
		if ev.ResponseBody == "" {
			ev.ResponseBody = string(partialContent(err))
		}
	}

	// The log is an audit trail; a write failure must not cost the examiner a suggestion.
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: recording LLM request: %v\n", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// errorKind is the failure class shown by `sppa llm list`.
func errorKind(err error) string {
	var (
		rl      *ErrRateLimit
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		down    *ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &maxTok):
		return "truncated"
	case errors.As(err, &invalid):
		return "invalid"
	case errors.As(err, &down):
		return "unavailable"
	}
	return "error"
}

// partialContent is whatever the model produced before a schema or
// token-limit failure.
func partialContent(err error) json.RawMessage {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return invalid.Content
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return maxTok.Content
	}
	return nil
}

// transcript renders req for `sppa llm view`.
func transcript(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "max_tokens=%d temperature=%.2f\n", req.MaxTokens, req.Temperature)
	section := func(title, body string) {
		fmt.Fprintf(&b, "\n== %s ==\n%s\n", title, strings.TrimRight(body, "\n"))
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		def, err := json.MarshalIndent(req.Schema.Definition, "", "  ")
		if err != nil {
			def = []byte(err.Error())
		}
		section("schema "+req.Schema.Name, string(def))
	}
	return b.String()
}
