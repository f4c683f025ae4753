package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

type row int

const (
	rowDifficulty row = iota
	rowQuestions
	rowTimer
	rowTimerSeconds
	numRows
)

// SettingsScreen edits the quiz settings shared by the whole run.
type SettingsScreen struct {
	env      *screen.Env
	selected row
	errMsg   string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

func New(env *screen.Env) *SettingsScreen {
	return &SettingsScreen{env: env}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "←→", Description: "Change"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < numRows-1 {
			s.selected++
		}
	case "left", "h", "-":
		s.change(-1)
	case "right", "l", "+", "=":
		s.change(1)
	case "space", " ", "enter":
		if s.selected == rowTimer || s.selected == rowDifficulty {
			s.change(1)
		}
	}
	return s, nil
}

// change moves the selected setting by delta and applies it.
func (s *SettingsScreen) change(delta int) {
	next := *s.env.Settings

	switch s.selected {
	case rowDifficulty:
		i := difficultyIndex(next.Difficulty)
		n := len(quiz.Difficulties)
		next.Difficulty = quiz.Difficulties[((i+delta)%n+n)%n]
	case rowQuestions:
		next.QuestionCount = clamp(next.QuestionCount+delta, quiz.MinQuestionCount, quiz.MaxQuestionCount)
	case rowTimer:
		next.UseTimer = !next.UseTimer
	case rowTimerSeconds:
		next.TimerSeconds = clamp(next.TimerSeconds+delta, quiz.MinTimerSeconds, quiz.MaxTimerSeconds)
	}

	if err := next.Validate(); err != nil {
		s.errMsg = err.Error()
		return
	}
	if err := s.env.Session.SetTimer(next.UseTimer, next.TimerDuration()); err != nil {
		s.errMsg = err.Error()
		return
	}
	*s.env.Settings = next
	s.errMsg = ""
}

func (s *SettingsScreen) View(width, height int) string {
	st := *s.env.Settings
	cw := components.ContentWidth(width)

	timer := "Off"
	if st.UseTimer {
		timer = "On"
	}
	rows := []struct{ label, value string }{
		{"Difficulty", string(st.Difficulty)},
		{"Questions per batch", fmt.Sprintf("%d", st.QuestionCount)},
		{"Timer", timer},
		{"Seconds per question", fmt.Sprintf("%d", st.TimerSeconds)},
	}

	var lines []string
	for i, r := range rows {
		value := "‹ " + r.value + " ›"
		line := fmt.Sprintf("%-22s %10s", r.label, value)
		switch {
		case row(i) == s.selected:
			line = theme.Selected.Render("▸ " + line)
		case row(i) == rowTimerSeconds && !st.UseTimer:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + line)
		default:
			line = theme.Unselected.Render("  " + line)
		}
		lines = append(lines, line)
	}

	body := strings.Join(lines, "\n")
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(body, cw))
}

func difficultyIndex(d quiz.Difficulty) int {
	for i, v := range quiz.Difficulties {
		if v == d {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
