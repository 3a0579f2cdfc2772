package llm

import (
	"context"
	"encoding/json"
)

// Provider drafts structured output for one request. Implementations
// wrap a vendor SDK; decorators add retries and event logging.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single exchange with the model. When Schema is set the
// provider asks for JSON matching it and Response.Content holds that
// object; otherwise Content is the reply text as a JSON string.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the vendor default
}

// Ask builds the one-turn request every sppa feature sends: a system
// prompt, one user message and an optional schema.
func Ask(system, user string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		Schema:   schema,
	}
}

// Message is one turn of the exchange.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema. Name doubles as the Anthropic tool name
// and the OpenAI response_format name, so keep it kebab-case.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is what a provider returned. StopReason is StopEnd or
// StopMaxTokens.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token count of one request. Cached prompt tokens are
// included in InputTokens.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
