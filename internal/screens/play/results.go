package play

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/screens/leaderboard"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// ResultsScreen summarizes a finished quiz and offers what to do next.
type ResultsScreen struct {
	env     *screen.Env
	results quiz.Results
	loaded  bool
	errMsg  string
	menu    components.Menu
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func NewResults(env *screen.Env) *ResultsScreen {
	s := &ResultsScreen{env: env}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Restart Quiz", Action: func() tea.Cmd {
			env.Session.Restart()
			return router.Replace(NewQuiz(env))
		}},
		{Label: "New Quiz", Action: func() tea.Cmd {
			env.Session.NewQuiz()
			return router.Replace(NewGenerate(env))
		}},
		{Label: "Leaderboard", Action: func() tea.Cmd {
			return router.Push(leaderboard.New(env.Session.Leaderboard()))
		}},
		{Label: "Home", Action: func() tea.Cmd {
			return router.PopToRoot
		}},
	})
	return s
}

// Init records the score. ComputeResults is idempotent, so coming back
// from the leaderboard shows the same summary.
func (s *ResultsScreen) Init() tea.Cmd {
	r, err := s.env.Session.ComputeResults()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.results = r
	s.loaded = true
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// Results returns the computed summary.
func (s *ResultsScreen) Results() quiz.Results {
	return s.results
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered("\n\n\nError: "+s.errMsg, width, theme.Error)
	}
	if !s.loaded {
		return ""
	}

	cw := components.ContentWidth(width)
	r := s.results

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("Quiz complete!"))
	b.WriteString("\n\n")
	if r.IsNewHighScore {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).
			Padding(0, 1).Render("★ NEW HIGH SCORE ★"))
		b.WriteString("\n\n")
	}
	for _, line := range r.Summary() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, label := range s.menu.Labels() {
		b.WriteString(components.ArcadeButton(label, i == s.menu.Selected, 20))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(strings.TrimRight(b.String(), "\n"), cw))
}

