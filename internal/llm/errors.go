package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the output did not match the request schema.
// Problems holds one entry per offending field when the schema check
// produced them.
type ErrInvalidResponse struct {
	Content  json.RawMessage
	Problems []string
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	if len(e.Problems) > 0 {
		return "invalid LLM response: " + strings.Join(e.Problems, "; ")
	}
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx responses and unreachable providers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the output was cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated at the token limit"
}

// classifyStatus maps an HTTP status from a provider SDK to the typed
// errors above. header may be nil when the SDK hides the response.
func classifyStatus(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
func retryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}

// Retryable reports whether another attempt at the same request could
// succeed. Truncation and cancellation are final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	return !errors.As(err, &maxTok)
}

// Hint describes a failed suggestion in words for the examiner.
func Hint(err error) string {
	var (
		rl      *ErrRateLimit
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
		down    *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rl) && rl.RetryAfter > 0:
		return fmt.Sprintf("Suggestions are rate limited. Try again in %s.", rl.RetryAfter.Round(time.Second))
	case errors.As(err, &rl):
		return "Suggestions are rate limited. Try again shortly."
	case errors.Is(err, context.DeadlineExceeded):
		return "The suggestion took too long. Try again or write the prompt yourself."
	case errors.As(err, &maxTok):
		return "The suggestion was cut off. Try again."
	case errors.As(err, &invalid):
		return "The suggestion came back malformed. Try again."
	case errors.As(err, &down):
		return "The suggestion service is unreachable. Write the prompt yourself or try again later."
	default:
		return err.Error()
	}
}
