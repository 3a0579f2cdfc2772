package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/llm"
)

// Purpose is the event log label for suggestion requests.
const Purpose = "task-prompt"

var (
	ErrUnknownTask   = errors.New("unknown task")
	ErrEmptyTopic    = errors.New("suggestion has an empty topic")
	ErrEmptyPrompt   = errors.New("suggestion has an empty prompt")
	ErrPromptTooLong = errors.New("suggestion prompt is too long")
	ErrRepeatedTopic = errors.New("suggestion repeats a topic already used")
)

// Service drafts task prompts with an LLM provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates a Service over the given provider.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

type suggestionOutput struct {
	Topic  string `json:"topic"`
	Prompt string `json:"prompt"`
}

// Suggest drafts a topic and prompt for in.Task.
func (s *Service) Suggest(ctx context.Context, in Input) (*Suggestion, error) {
	if _, ok := catalog.Definition(in.Task); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, in.Task)
	}

	ctx = llm.WithTag(ctx, llm.Tag{Purpose: Purpose, SessionID: in.SessionID, Task: in.Task})
	req := llm.Ask(systemPrompt, buildUserMessage(in, s.config), SuggestionSchema)
	req.MaxTokens = s.config.MaxTokens
	req.Temperature = s.config.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("prompt suggestion failed: %w", err)
	}

	out, err := llm.Decode[suggestionOutput](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestion: %w", err)
	}

	sug := &Suggestion{
		Topic:  strings.TrimSpace(out.Topic),
		Prompt: strings.TrimSpace(out.Prompt),
	}
	if err := s.check(sug, in); err != nil {
		return nil, err
	}
	return sug, nil
}

func (s *Service) check(sug *Suggestion, in Input) error {
	switch {
	case sug.Topic == "":
		return ErrEmptyTopic
	case sug.Prompt == "":
		return ErrEmptyPrompt
	case s.config.MaxPromptLen > 0 && len(sug.Prompt) > s.config.MaxPromptLen:
		return fmt.Errorf("%w: %d bytes", ErrPromptTooLong, len(sug.Prompt))
	}
	for _, t := range in.PriorTopics {
		if strings.EqualFold(strings.TrimSpace(t), sug.Topic) {
			return fmt.Errorf("%w: %q", ErrRepeatedTopic, sug.Topic)
		}
	}
	return nil
}
