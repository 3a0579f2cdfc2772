package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/abhisek/sppa/internal/ui/theme"
)

// RatingBar renders the four ratings as numbered chips, highlighting the
// chosen one. Keys 1-4 select ratings worst to best.
func RatingBar(chosen tasklist.Rating, active bool) string {
	parts := make([]string, 0, 4)
	for i, r := range tasklist.Ratings() {
		label := fmt.Sprintf("%d %s", i+1, r.Label())
		style := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case r == chosen:
			style = style.Foreground(theme.BgDark).Background(theme.RatingColor(r.Rank())).Bold(true)
		case chosen.Valid():
			style = style.Foreground(theme.Border)
		case active:
			style = style.Foreground(theme.RatingColor(r.Rank()))
		default:
			style = style.Foreground(theme.TextDim)
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

// RatingForKey maps the keys "1".."4" to ratings.
func RatingForKey(key string) (tasklist.Rating, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '4' {
		return tasklist.Unset, false
	}
	return tasklist.Ratings()[key[0]-'1'], true
}
