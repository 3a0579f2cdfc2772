package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var suggestion = json.RawMessage(`{"topic":"Market day","prompt":"Tell me about your last trip to the market."}`)

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
}

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{{Content: suggestion}}, false, 1},
		{"transient then success", []MockResponse{unavailable(), {Content: suggestion}}, false, 2},
		{"rate limit then success", []MockResponse{{Err: &ErrRateLimit{}}, {Content: suggestion}}, false, 2},
		{"attempts exhausted", []MockResponse{unavailable(), unavailable(), unavailable(), {Content: suggestion}}, true, 3},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: suggestion}}, true, 1},
		{"malformed retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Content: suggestion},
		}, true, 2},
		{"malformed then success", []MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("bad")}}, {Content: suggestion}}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry(), 0).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(resp.Content) != string(suggestion) {
				t.Errorf("content = %s", resp.Content)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ZeroAttemptsMeansOne(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: suggestion})
	_, err := WithRetry(mock, RetryConfig{}, 0).Generate(context.Background(), Request{})
	if err == nil || mock.CallCount() != 1 {
		t.Fatalf("err = %v, calls = %d", err, mock.CallCount())
	}
}

func TestRetry_Cancelled(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: suggestion})
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(mock, cfg, 0).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRetry_RetryAfterCappedAtMaxWait(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute}},
		MockResponse{Content: suggestion},
	)

	start := time.Now()
	if _, err := WithRetry(mock, fastRetry(), 0).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("waited %s, want at most MaxWait", elapsed)
	}
}

func TestRetry_RetryAfterHonoured(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 30 * time.Millisecond}},
		MockResponse{Content: suggestion},
	)
	cfg := fastRetry()
	cfg.MaxWait = time.Second

	start := time.Now()
	if _, err := WithRetry(mock, cfg, 0).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("waited %s, want at least the server's Retry-After", elapsed)
	}
}

func TestRetry_GivesUpWhenWaitPassesDeadline(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: suggestion})
	cfg := fastRetry()
	cfg.InitialWait = time.Minute
	cfg.MaxWait = time.Minute

	start := time.Now()
	_, err := WithRetry(mock, cfg, 50*time.Millisecond).Generate(context.Background(), Request{})
	var down *ErrProviderUnavailable
	if !errors.As(err, &down) {
		t.Fatalf("err = %v, want the provider error", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
	if elapsed := time.Since(start); elapsed > 40*time.Millisecond {
		t.Errorf("slept %s before giving up", elapsed)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestRetry_DeadlineBoundsCall(t *testing.T) {
	p := WithRetry(slowProvider{}, fastRetry(), 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if p.ModelID() != "slow" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := WithRetry(nil, RetryConfig{MaxAttempts: 5, InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}, 0)
	err := errors.New("network")
	for attempt, want := range map[int]time.Duration{1: 100 * time.Millisecond, 2: 200 * time.Millisecond, 3: 300 * time.Millisecond, 4: 300 * time.Millisecond} {
		got := r.wait(attempt, err)
		if got < want*4/5 || got > want*6/5 {
			t.Errorf("wait(%d) = %s, want %s ±20%%", attempt, got, want)
		}
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
		{&ErrMaxTokensExceeded{}, false},
		{&ErrRateLimit{}, true},
		{&ErrProviderUnavailable{}, true},
		{&ErrInvalidResponse{Err: errors.New("bad")}, true},
		{errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		if got := Retryable(tt.err); got != tt.want {
			t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrRateLimit{RetryAfter: 20 * time.Second}, "Try again in 20s."},
		{&ErrRateLimit{}, "Try again shortly."},
		{context.DeadlineExceeded, "took too long"},
		{&ErrMaxTokensExceeded{}, "cut off"},
		{&ErrInvalidResponse{Problems: []string{"topic: missing"}}, "malformed"},
		{&ErrProviderUnavailable{}, "unreachable"},
		{errors.New("rate limited"), "rate limited"},
	}
	for _, tt := range tests {
		if got := Hint(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("Hint(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
	if Hint(nil) != "" {
		t.Error("Hint(nil) should be empty")
	}
}

func TestRetryAfterHeader(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   time.Duration
	}{
		{"none", nil, 0},
		{"seconds", http.Header{"Retry-After": {"12"}}, 12 * time.Second},
		{"past date", http.Header{"Retry-After": {"Wed, 21 Oct 2015 07:28:00 GMT"}}, 0},
		{"garbage", http.Header{"Retry-After": {"soon"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryAfter(tt.header); got != tt.want {
				t.Errorf("retryAfter = %s, want %s", got, tt.want)
			}
		})
	}

	err := classifyStatus(http.StatusTooManyRequests, http.Header{"Retry-After": {"3"}}, errors.New("429"))
	if Hint(err) != "Suggestions are rate limited. Try again in 3s." {
		t.Errorf("hint = %q", Hint(err))
	}
}
