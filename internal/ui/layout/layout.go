// Package layout draws the frame around every console screen: the
// header with the interview status, the key-hint footer and the notice
// shown when the terminal is too small to run an interview.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/theme"
)

// A round of ten tasks with instructions needs this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the examiner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The terminal is too small for an interview.\n\nResize to at least %d x %d.\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the product name, the screen title centred and the
// status (language and working level) on the right. The title is
// shortened before the status is.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  SPPA")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	room := inner - lipgloss.Width(left) - lipgloss.Width(right) - 2
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(clip(title, room))

	slack := inner - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	leftGap := max(min((inner-lipgloss.Width(center))/2-lipgloss.Width(left), slack-1), 1)
	rightGap := max(slack-leftGap, 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter lists hints in order and drops the ones that do not fit on
// one line, ending with "…" when any were dropped.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(width-4, 0)
	content := " "
	for i, h := range hints {
		part := "  " + key.Render(h.Key) + " " + desc.Render(h.Description)
		reserve := 0
		if i < len(hints)-1 {
			reserve = 3
		}
		if lipgloss.Width(content+part)+reserve > room {
			content += desc.Render("  …")
			break
		}
		content += part
	}
	return bar(width).Render(content)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the terminal height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return header + "\n" + lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" + footer
}

// clip shortens s to n cells, marking the cut with "…".
func clip(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return strings.Repeat("…", max(n, 0))
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
