// Package report turns a finalized interview into an exportable document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/tasklist"
)

// Title heads every report.
const Title = "Speaking Proficiency Placement Assessment (SPPA) Report"

// Document is a report ready for rendering.
type Document struct {
	Title         string       `json:"title"`
	SessionID     string       `json:"session_id"`
	InterviewDate time.Time    `json:"interview_date"`
	Language      string       `json:"language"`
	LearnerName   string       `json:"learner_name,omitempty"`
	LearnerID     string       `json:"learner_id,omitempty"`
	Level         string       `json:"suggested_level"`
	Reasoning     string       `json:"reasoning"`
	Tasks         []TaskResult `json:"tasks"`
}

// TaskResult is one administered task with the examiner's annotation.
type TaskResult struct {
	Number  int             `json:"number"`
	Name    string          `json:"name"`
	Level   int             `json:"level"`
	Rating  tasklist.Rating `json:"-"`
	Label   string          `json:"rating"`
	Rank    int             `json:"rating_rank"`
	Topic   string          `json:"topic"`
	Prompt  string          `json:"prompt"`
	Comment string          `json:"comment"`
}

// Heading is the one-line summary of the task used by the Markdown
// layout.
func (t TaskResult) Heading() string {
	return fmt.Sprintf("Task %d: %s (Level %d) - Rating: %s", t.Number, t.Name, t.Level, t.Label)
}

// Build assembles a Document from a session record and its annotations.
// Annotations are matched to tasks by zero-based position; tasks without
// one get empty fields.
func Build(rec store.SessionData, annotations []store.AnnotationData) Document {
	byPos := make(map[int]store.AnnotationData, len(annotations))
	for _, a := range annotations {
		byPos[a.Position] = a
	}

	doc := Document{
		Title:         Title,
		SessionID:     rec.UUID,
		InterviewDate: rec.InterviewDate,
		Language:      rec.Language,
		LearnerName:   rec.LearnerName,
		LearnerID:     rec.LearnerID,
		Level:         rec.FinalLevel,
		Reasoning:     rec.FinalReasoning,
		Tasks:         make([]TaskResult, 0, len(rec.Tasks)),
	}
	for i, t := range rec.Tasks {
		r := tasklist.Rating(t.Rating)
		if !r.Valid() {
			r = tasklist.Unset
		}
		a := byPos[t.Position]
		doc.Tasks = append(doc.Tasks, TaskResult{
			Number:  i + 1,
			Name:    t.Name,
			Level:   t.Level,
			Rating:  r,
			Label:   r.Label(),
			Rank:    r.Rank(),
			Topic:   a.Topic,
			Prompt:  a.Prompt,
			Comment: a.Comment,
		})
	}
	return doc
}

// Filename returns the default file name for doc in the given extension,
// e.g. SPPA_Report_2026-03-14_5b0c7d1e.md. The suffix is the first block of
// the session ID so two interviews on one day get separate files, while
// exporting the same interview again replaces its earlier report.
func Filename(doc Document, ext string) string {
	date := doc.InterviewDate.Format(time.DateOnly)
	id, _, _ := strings.Cut(doc.SessionID, "-")
	if id == "" {
		return fmt.Sprintf("SPPA_Report_%s.%s", date, ext)
	}
	return fmt.Sprintf("SPPA_Report_%s_%s.%s", date, id, ext)
}
