package round

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/components"
	"github.com/abhisek/sppa/internal/ui/theme"
)

func (s *RoundScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.LevelColor(int(s.sess.CurrentLevel))).
		Render(fmt.Sprintf("Phase 2: Task Phase (Testing at %s)", s.sess.CurrentLevel))

	progress := components.RoundProgress(s.sess.Round, int(s.sess.CurrentLevel), cw).View()

	top := heading + "\n" + progress + "\n"
	bottom := s.renderFooter(cw)

	avail := height - lipgloss.Height(top) - lipgloss.Height(bottom) - 1
	body := s.renderTasks(cw, avail)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(top+"\n"+body+bottom))
}

// renderTasks renders the task blocks, scrolled so the cursor stays in
// view within height lines.
func (s *RoundScreen) renderTasks(cw, height int) string {
	if len(s.sess.Round) == 0 {
		return ""
	}

	blocks := make([]string, len(s.sess.Round))
	for i := range s.sess.Round {
		blocks[i] = s.renderTask(i, cw)
	}
	return strings.Join(components.Window(blocks, s.cursor, height), "\n")
}

func (s *RoundScreen) renderTask(i, cw int) string {
	t := s.sess.Round[i]
	active := i == s.cursor && s.mode == modeRating
	pos := len(s.sess.TasksCompleted) + i

	marker := "  "
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if active {
		marker = "▸ "
		titleStyle = titleStyle.Foreground(theme.Primary).Bold(true)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%sTask %d: %s (%s Function)", marker, i+1, t.Name, t.Level)))
	b.WriteString("\n")
	if s.showInstr {
		b.WriteString(theme.Hint.Width(cw - 4).Render("    Instruction: " + t.Instruction()))
		b.WriteString("\n")
	}
	if d, ok := s.drafts[pos]; ok {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Width(cw - 4).
			Render(fmt.Sprintf("    Topic: %s\n    Prompt: %s", d.Topic, d.Prompt)))
		b.WriteString("\n")
	} else if s.pending[pos] {
		b.WriteString("    " + s.spinner.View() + theme.Hint.Render(" Drafting a prompt..."))
		b.WriteString("\n")
	}
	b.WriteString("    " + components.RatingBar(t.Rating, active))
	b.WriteString("\n")
	return b.String()
}

func (s *RoundScreen) renderFooter(cw int) string {
	var b strings.Builder

	if s.banner != "" {
		b.WriteString(components.Banner(s.bannerKind, s.banner, cw))
		b.WriteString("\n")
	}

	switch s.mode {
	case modeChoice:
		b.WriteString(s.menu.View())
	case modeOverrideReason:
		b.WriteString(theme.Body.Render("Recording Level " + string(s.override)))
		b.WriteString("\n")
		b.WriteString(s.reason.View())
		b.WriteString("\n")
	case modeConfirmRestart:
		b.WriteString(components.Banner(components.BannerWarning,
			"Clear all ratings and start a new interview? (y/n)", cw))
		b.WriteString("\n")
	case modeSaving:
		b.WriteString(theme.Hint.Render("Saving session..."))
		b.WriteString("\n")
	default:
		b.WriteString(s.calculate().View())
		b.WriteString("\n")
	}
	return b.String()
}
