package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

const arcadeTitleFull = `████████╗██████╗ ██╗██╗   ██╗██╗ █████╗ ███████╗
╚══██╔══╝██╔══██╗██║██║   ██║██║██╔══██╗╚══███╔╝
   ██║   ██████╔╝██║██║   ██║██║███████║  ███╔╝ 
   ██║   ██╔══██╗██║╚██╗ ██╔╝██║██╔══██║ ███╔╝  
   ██║   ██║  ██║██║ ╚████╔╝ ██║██║  ██║███████╗
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝╚══════╝`

const arcadeTitleCompact = "T · R · I · V · I · A · Z"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// stats is what the dashboard bar shows.
type stats struct {
	queued   int
	answered int
	best     float64
	runs     int // completed quizzes on the leaderboard
	timer    int // seconds, 0 when off
}

func renderStatsBar(st stats, cw int, compact bool) string {
	queuedStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	timer := dimStyle.Render("⏱ OFF")
	if st.timer > 0 {
		timer = timerStyle.Render(fmt.Sprintf("⏱ %ds", st.timer))
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			queuedStyle.Render(fmt.Sprintf("?%d/%d", st.answered, st.queued)),
			bestStyle.Render(fmt.Sprintf("★%.0f/%d", st.best, st.runs)),
			timer,
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			queuedStyle.Render(fmt.Sprintf("? %d/%d ANSWERED", st.answered, st.queued)),
			bestStyle.Render(fmt.Sprintf("★ BEST %.2f OF %d", st.best, st.runs)),
			timer,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

const buttonWidth = 24

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner warns that generation is unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate questions")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
