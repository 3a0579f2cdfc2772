package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/abhisek/sppa/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. When Segments is set the
// bar is split into one cell per entry, each painted its own color;
// otherwise Percent of the bar is painted Fill.
type ProgressBar struct {
	Label      string
	LabelColor color.Color
	Percent    float64
	Fill       color.Color
	Segments   []color.Color
	Width      int
}

// RoundProgress shows one cell per task of a round, colored by its rating
// so a run of breakdowns is visible before scoring. The label takes the
// working level's color.
func RoundProgress(tasks []tasklist.AdministeredTask, level int, width int) ProgressBar {
	segs := make([]color.Color, len(tasks))
	for i, t := range tasks {
		segs[i] = theme.Border
		if t.Done() {
			segs[i] = theme.RatingColor(t.Rating.Rank())
		}
	}
	done := tasklist.CountDone(tasks)
	pct := 0.0
	if len(tasks) > 0 {
		pct = float64(done) / float64(len(tasks))
	}
	return ProgressBar{
		Label:      fmt.Sprintf("Rated %d/%d", done, len(tasks)),
		LabelColor: theme.LevelColor(level),
		Percent:    pct,
		Segments:   segs,
		Width:      width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		fg := p.LabelColor
		if fg == nil {
			fg = theme.Text
		}
		result += lipgloss.NewStyle().Foreground(fg).Render(p.Label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result), 4)

	if len(p.Segments) > 0 {
		result += p.segments(barWidth)
	} else {
		result += p.fill(barWidth)
	}

	return result
}

func (p ProgressBar) fill(width int) string {
	filled := min(max(int(float64(width)*p.Percent), 0), width)
	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled))
}

// segments spreads width over the cells, one column gap between them,
// giving any remainder to the leading cells.
func (p ProgressBar) segments(width int) string {
	n := len(p.Segments)
	cells := width - (n - 1)
	if cells < n {
		cells = n
	}
	var b strings.Builder
	for i, c := range p.Segments {
		w := cells / n
		if i < cells%n {
			w++
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(lipgloss.NewStyle().Background(c).Render(strings.Repeat(" ", w)))
	}
	return b.String()
}
