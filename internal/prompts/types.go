// Package prompts drafts concrete topics and prompts for speaking tasks
// with an LLM, as an aid to the examiner. Suggestions are never scored.
package prompts

import "github.com/abhisek/sppa/internal/catalog"

// Input is everything the suggester knows about the task being drafted.
type Input struct {
	Task     string        // catalog task name
	Level    catalog.Level // level the task is administered at
	Language string        // target language of the interview

	// SessionID is the interview UUID, recorded with the request.
	SessionID string

	// Notes are the examiner's free-text notes from the warm-up survey.
	Notes string

	// PriorTopics are topics already used in this interview.
	PriorTopics []string
}

// Suggestion is a drafted topic and the prompt the examiner reads out.
type Suggestion struct {
	Topic  string
	Prompt string
}
