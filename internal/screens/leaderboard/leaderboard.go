package leaderboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

type scoresLoadedMsg struct {
	Scores []float64
}

// LeaderboardScreen lists the scores of every quiz finished this run.
type LeaderboardScreen struct {
	board      *quiz.Leaderboard
	scores     []float64
	loaded     bool
	confirming bool
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

func New(board *quiz.Leaderboard) *LeaderboardScreen {
	return &LeaderboardScreen{board: board}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return scoresLoadedMsg{Scores: s.board.Ranked()}
	}
}

func (s *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear scores"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		s.scores = msg.Scores
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.confirming {
			switch msg.String() {
			case "y", "Y":
				s.board.Clear()
				s.confirming = false
				return s, s.Init()
			case "n", "N":
				s.confirming = false
			}
			return s, nil
		}
		if msg.String() == "c" && len(s.scores) > 0 {
			s.confirming = true
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading scores...")
	}
	if len(s.scores) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No scores yet. Finish a quiz to get on the board!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("★ HIGH SCORES ★")))
	b.WriteString("\n\n")

	for i, score := range s.scores {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == 0 {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(quiz.FormatRank(i+1, score))))
		b.WriteString("\n")
	}

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("Clear every score? (y/n)")))
	}
	return b.String()
}

