package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/abhisek/sppa/internal/catalog"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider answers from a queue of canned responses and records every
// request. An offline mock answers topic/prompt requests from a built-in
// table once the queue is empty, so the console can be tried without an
// API key.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	offline   bool
	Calls     []Request
}

// NewMockProvider returns a mock that fails with ErrProviderUnavailable
// once responses run out.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns the mock used for provider "mock".
func NewOfflineProvider() *MockProvider {
	return &MockProvider{offline: true}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.responses) > 0:
		next, m.responses = m.responses[0], m.responses[1:]
	case m.offline:
		next = offlineSuggestion(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type cannedPrompt struct {
	Topic  string `json:"topic"`
	Prompt string `json:"prompt"`
}

// offlinePrompts holds two drafts per task so a second request in the
// same interview can avoid the topic already used.
var offlinePrompts = map[string][]cannedPrompt{
	catalog.TaskSimpleWHQuestions: {
		{"Daily routine", "What time do you usually get up, and what do you do first?"},
		{"Favourite food", "What food do you like most? Where do you usually eat it?"},
	},
	catalog.TaskAskingBasicQuestions: {
		{"New neighbour", "I just moved in next door. Ask me three questions to get to know me."},
		{"Renting a room", "I have a room for rent. Ask me what you need to know about it."},
	},
	catalog.TaskRolePlaySimple: {
		{"Bus station", "You are at a bus station. I am the clerk. Buy a ticket to the next town."},
		{"Ordering lunch", "You are in a cafe and I am the waiter. Order lunch for yourself."},
	},
	catalog.TaskRolePlayComplication: {
		{"Hotel overbooked", "You arrive at your hotel and I tell you there is no room for you. Sort it out with me."},
		{"Wrong order", "The shop sent you the wrong item. Call me, the manager, and get it fixed."},
	},
	catalog.TaskNarrationPast: {
		{"Last holiday", "Tell me about the last holiday you took, from the day you left to the day you came back."},
		{"A memorable day", "Tell me about a day you remember well. What happened, step by step?"},
	},
	catalog.TaskNarrationPresent: {
		{"Typical workday", "Walk me through a normal working day for you, from morning to evening."},
		{"Weekend habits", "Describe what you usually do on weekends."},
	},
	catalog.TaskNarrationFuture: {
		{"Next year's plans", "What are you planning to do next year? Tell me in as much detail as you can."},
		{"Retirement", "How do you picture your life after you stop working?"},
	},
	catalog.TaskDetailedDescription: {
		{"Home town", "Describe the town where you grew up so that I could find my way around it."},
		{"Workplace", "Describe the place where you work: the building, the rooms, the people."},
	},
	catalog.TaskInstructions: {
		{"Favourite recipe", "Explain to me, step by step, how to cook a dish you know well."},
		{"Getting around", "Tell me how to get from here to the nearest market by public transport."},
	},
	catalog.TaskReportingEvents: {
		{"Local news", "Tell me about something that happened recently in your area and how people reacted."},
		{"Weather event", "Report on a recent storm or weather event you heard about."},
	},
	catalog.TaskAbstractDiscussion: {
		{"Technology and work", "Some say technology makes work easier, others say it makes work harder. Discuss."},
		{"City and country life", "Discuss how life in cities and in the countryside shapes people differently."},
	},
	catalog.TaskSupportingOpinion: {
		{"Public transport", "Should public transport be free? Give your opinion and defend it."},
		{"School uniforms", "Are school uniforms a good idea? Take a side and support it."},
	},
	catalog.TaskHypothesizing: {
		{"Without phones", "What would happen if mobile phones disappeared tomorrow?"},
		{"Leading the country", "If you were in charge of your country for a year, what would you change and why?"},
	},
}

// offlineSuggestion drafts from offlinePrompts for the task named in the
// request, skipping topics the request already mentions.
func offlineSuggestion(req Request) MockResponse {
	var text strings.Builder
	for _, msg := range req.Messages {
		text.WriteString(msg.Content)
		text.WriteString("\n")
	}
	body := text.String()

	task := ""
	for _, line := range strings.Split(body, "\n") {
		if name, ok := strings.CutPrefix(line, "Task: "); ok {
			task = strings.TrimSpace(name)
			break
		}
	}
	drafts, ok := offlinePrompts[task]
	if !ok {
		return MockResponse{Err: &ErrInvalidResponse{Err: errUnknownOfflineTask(task)}}
	}

	pick := drafts[0]
	lower := strings.ToLower(body)
	for _, d := range drafts {
		if !strings.Contains(lower, strings.ToLower(d.Topic)) {
			pick = d
			break
		}
	}

	content, _ := json.Marshal(pick)
	words := len(strings.Fields(body))
	out := len(strings.Fields(pick.Prompt)) + len(strings.Fields(pick.Topic))
	return MockResponse{
		Content: content,
		Usage:   Usage{InputTokens: words, OutputTokens: out, TotalTokens: words + out},
	}
}

type errUnknownOfflineTask string

func (e errUnknownOfflineTask) Error() string {
	if e == "" {
		return "offline mock: no task named in the request"
	}
	return "offline mock: no drafts for task " + string(e)
}
