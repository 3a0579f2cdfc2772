package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/tasklist"
)

func sampleRecord() store.SessionData {
	return store.SessionData{
		ID:             7,
		UUID:           "5b0c7d1e-0000-4000-8000-000000000001",
		Language:       "Tagalog",
		InterviewDate:  time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		InitialLevel:   1,
		CurrentLevel:   1,
		FinalLevel:     "1+",
		FinalReasoning: "Strong performance at Level 1 with partial success on stretch tasks.",
		Tasks: []store.TaskResponseData{
			{Position: 0, Name: "Simple WH-Question Exchange", Level: 1, Rating: 3},
			{Position: 1, Name: "Narration (Past)", Level: 2, Rating: 1},
			{Position: 2, Name: "Asking Basic Questions", Level: 1, Rating: 2},
		},
	}
}

func sampleAnnotations() []store.AnnotationData {
	return []store.AnnotationData{
		{Position: 1, Topic: "Last holiday", Prompt: "Tell me about your last holiday.", Comment: "Lost past tense midway."},
	}
}

func TestBuild(t *testing.T) {
	doc := Build(sampleRecord(), sampleAnnotations())

	assert.Equal(t, Title, doc.Title)
	assert.Equal(t, "1+", doc.Level)
	require.Len(t, doc.Tasks, 3)

	first := doc.Tasks[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, tasklist.FullySustained, first.Rating)
	assert.Equal(t, "Fully Sustained Response", first.Label)
	assert.Empty(t, first.Topic)

	second := doc.Tasks[1]
	assert.Equal(t, "Last holiday", second.Topic)
	assert.Equal(t, "Lost past tense midway.", second.Comment)
	assert.Equal(t, "Task 2: Narration (Past) (Level 2) - Rating: Partial Response", second.Heading())
}

func TestBuild_BadRatingShownAsUnrated(t *testing.T) {
	rec := sampleRecord()
	rec.Tasks[0].Rating = 9
	doc := Build(rec, nil)
	assert.Equal(t, tasklist.Unset, doc.Tasks[0].Rating)
	assert.Equal(t, "Not rated", doc.Tasks[0].Label)
	assert.Equal(t, -1, doc.Tasks[0].Rank)
}

func TestMarkdown(t *testing.T) {
	r, err := Lookup("md")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Build(sampleRecord(), sampleAnnotations())))
	out := buf.String()

	for _, want := range []string{
		"# Speaking Proficiency Placement Assessment (SPPA) Report\n",
		"## Session Details\n",
		"- **Interview Date:** March 04, 2026\n",
		"- **Language:** Tagalog\n\n## Assessment Result",
		"**Suggested Proficiency Level:** 1+\n",
		"**Reasoning:** Strong performance at Level 1",
		"## Task Performance Breakdown\n",
		"- Task 1: Simple WH-Question Exchange (Level 1) - Rating: Fully Sustained Response\n",
		"  - Topic: Last holiday\n  - Task Prompt: Tell me about your last holiday.\n  - Comment on Learner Response: Lost past tense midway.",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Learner:")
	assert.Equal(t, 3, strings.Count(out, "- Task "))
}

func TestMarkdown_LearnerLine(t *testing.T) {
	rec := sampleRecord()
	rec.LearnerName = "Maria Santos"
	rec.LearnerID = "L-204"

	var buf bytes.Buffer
	require.NoError(t, markdownRenderer{}.Render(&buf, Build(rec, nil)))
	assert.Contains(t, buf.String(), "- **Language:** Tagalog\n- **Learner:** Maria Santos (L-204)\n\n## Assessment Result")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsonRenderer{}.Render(&buf, Build(sampleRecord(), sampleAnnotations())))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1+", got["suggested_level"])
	tasks := got["tasks"].([]any)
	require.Len(t, tasks, 3)
	second := tasks[1].(map[string]any)
	assert.Equal(t, "Partial Response", second["rating"])
	assert.Equal(t, float64(1), second["rating_rank"])
	assert.Equal(t, "Last holiday", second["topic"])
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"json", "markdown"}, Formats())
	_, err := Lookup("docx")
	assert.Error(t, err)
	r, err := Lookup(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, "json", r.Ext())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	doc := Build(sampleRecord(), nil)

	path, err := WriteFile(dir, "markdown", doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SPPA_Report_2026-03-04_5b0c7d1e.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# "+Title))

	_, err = WriteFile(dir, "pdf", doc)
	assert.Error(t, err)
}

func TestWriteFile_SameDayInterviews(t *testing.T) {
	dir := t.TempDir()

	first := Build(sampleRecord(), nil)
	secondRec := sampleRecord()
	secondRec.UUID = "9e41aa02-0000-4000-8000-000000000002"
	secondRec.LearnerName = "Jose Reyes"
	second := Build(secondRec, nil)

	p1, err := WriteFile(dir, "markdown", first)
	require.NoError(t, err)
	p2, err := WriteFile(dir, "markdown", second)
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Jose Reyes")

	again, err := WriteFile(dir, "markdown", first)
	require.NoError(t, err)
	assert.Equal(t, p1, again, "re-exporting an interview replaces its own report")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteFile_NoSessionIDNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	doc := Build(sampleRecord(), nil)
	doc.SessionID = ""

	p1, err := WriteFile(dir, "json", doc)
	require.NoError(t, err)
	p2, err := WriteFile(dir, "json", doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "SPPA_Report_2026-03-04.json"), p1)
	assert.Equal(t, filepath.Join(dir, "SPPA_Report_2026-03-04_2.json"), p2)
}
