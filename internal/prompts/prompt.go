package prompts

import (
	"fmt"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
)

const systemPrompt = `You help an examiner run an oral proficiency interview.

Rules:
- Draft one topic and one prompt for the requested speaking task.
- The prompt is read aloud by the examiner in English. The learner answers in the target language.
- Follow the task instruction closely. The prompt must elicit exactly that function (narration, description, opinion and so on).
- Prefer topics connected to the learner's warm-up notes when they fit the task.
- Avoid military work and family matters unless the notes say the learner raised them.
- Do not reuse any topic from the "already used" list.
- Keep the prompt to two or three sentences.`

// buildUserMessage constructs the user message from the Input and Config limits.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n", in.Task)
	fmt.Fprintf(&b, "Instruction: %s\n", catalog.InstructionFor(in.Task))
	fmt.Fprintf(&b, "Level: %s\n", in.Level.DisplayName())
	fmt.Fprintf(&b, "Target language: %s\n", in.Language)

	b.WriteString("\nWarm-up notes:\n")
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		b.WriteString(notes)
	} else {
		b.WriteString("None")
	}

	b.WriteString("\n\nAlready used in this interview:\n")
	b.WriteString(buildPriorTopics(in.PriorTopics, cfg.MaxPriorTopics))

	return b.String()
}

// buildPriorTopics lists the most recent topics, or "None".
func buildPriorTopics(topics []string, max int) string {
	var kept []string
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return "None"
	}
	if max > 0 && len(kept) > max {
		kept = kept[len(kept)-max:]
	}

	var b strings.Builder
	for i, t := range kept {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
