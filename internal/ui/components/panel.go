package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/theme"
)

// ContentWidth returns the inner width used for screen panels so that
// stacked boxes align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded-border box of width cw. A nil border
// uses the theme border color.
func Panel(content string, cw int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// BannerKind selects the banner style.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerWarning
	BannerError
	BannerSuccess
)

// Banner renders a left-ruled message wrapped to width.
func Banner(kind BannerKind, text string, width int) string {
	style := theme.InfoBanner
	switch kind {
	case BannerWarning:
		style = theme.WarningBanner
	case BannerError:
		style = theme.ErrorBanner
	case BannerSuccess:
		style = theme.SuccessBanner
	}
	return style.Width(width).Render(text)
}

// Window returns the run of blocks around cursor that fits in height
// lines. The cursor block is always included, so a tall block may
// overflow a small height.
func Window(blocks []string, cursor, height int) []string {
	if len(blocks) == 0 {
		return nil
	}
	if cursor < 0 || cursor >= len(blocks) {
		cursor = 0
	}
	start, end := cursor, cursor+1
	used := lipgloss.Height(blocks[cursor])

	for {
		grew := false
		if end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
			used += lipgloss.Height(blocks[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
			start--
			used += lipgloss.Height(blocks[start])
			grew = true
		}
		if !grew {
			break
		}
	}
	return blocks[start:end]
}
