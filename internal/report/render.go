package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
)

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	Ext() string
}

var renderers = map[string]Renderer{
	"markdown": markdownRenderer{},
	"json":     jsonRenderer{},
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for n := range renderers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the renderer for a format name. "md" is accepted for
// markdown.
func Lookup(format string) (Renderer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "md" {
		f = "markdown"
	}
	r, ok := renderers[f]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return r, nil
}

// WriteFile renders doc into dir under its default file name and returns
// the written path.
func WriteFile(dir, format string, doc Document) (string, error) {
	r, err := Lookup(format)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path, f, err := create(dir, doc, r.Ext())
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := r.Render(f, doc); err != nil {
		f.Close()
		return "", fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// create opens the report file. A report for a known session replaces
// that session's earlier export; without a session ID the file is never
// overwritten and a counter is appended instead.
func create(dir string, doc Document, ext string) (string, *os.File, error) {
	name := Filename(doc, ext)
	path := filepath.Join(dir, name)
	if doc.SessionID != "" {
		f, err := os.Create(path)
		return path, f, err
	}

	base := strings.TrimSuffix(name, "."+ext)
	for n := 2; ; n++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			return path, f, err
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.%s", base, n, ext))
	}
}

const markdownLayout = `# {{.Title}}

## Session Details

- **Interview Date:** {{longDate .InterviewDate}}
- **Language:** {{.Language}}
{{- if .LearnerName}}
- **Learner:** {{.LearnerName}}{{if .LearnerID}} ({{.LearnerID}}){{end}}
{{- end}}

## Assessment Result

**Suggested Proficiency Level:** {{.Level}}

**Reasoning:** {{.Reasoning}}

## Task Performance Breakdown
{{range .Tasks}}
- {{.Heading}}
  - Topic: {{.Topic}}
  - Task Prompt: {{.Prompt}}
  - Comment on Learner Response: {{.Comment}}
{{- end}}
`

var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"longDate": func(t time.Time) string {
		return t.Format("January 02, 2006")
	},
}).Parse(markdownLayout))

type markdownRenderer struct{}

func (markdownRenderer) Ext() string { return "md" }

func (markdownRenderer) Render(w io.Writer, doc Document) error {
	return markdownTmpl.Execute(w, doc)
}

type jsonRenderer struct{}

func (jsonRenderer) Ext() string { return "json" }

func (jsonRenderer) Render(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
