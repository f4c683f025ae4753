package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/screens/leaderboard"
	"github.com/abhisek/triviaz/internal/screens/notice"
	"github.com/abhisek/triviaz/internal/screens/play"
	"github.com/abhisek/triviaz/internal/screens/settings"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env   *screen.Env
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "GENERATE QUESTIONS", Action: func() tea.Cmd {
			return router.Push(play.NewGenerate(env))
		}},
		{Label: "TAKE QUIZ", Action: h.takeQuiz},
		{Label: "SETTINGS", Action: func() tea.Cmd {
			return router.Push(settings.New(env))
		}},
		{Label: "LEADERBOARD", Action: func() tea.Cmd {
			return router.Push(leaderboard.New(env.Session.Leaderboard()))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	h.refresh()
	return h
}

func (h *HomeScreen) takeQuiz() tea.Cmd {
	switch h.env.Session.State() {
	case quiz.StateEmpty:
		return router.Push(notice.New("Take Quiz", "No questions yet.\nGenerate some questions first."))
	case quiz.StateResults:
		return router.Push(play.NewResults(h.env))
	}
	return router.Push(play.NewQuiz(h.env))
}

// Init refreshes the dashboard; the router calls it again whenever a
// screen above is popped.
func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	v := h.env.Session.Snapshot()
	lb := h.env.Session.Leaderboard()
	h.stats = stats{
		queued:   v.TotalQuestions,
		answered: v.AnswersSubmitted,
		best:     lb.Best(),
		runs:     lb.Len(),
	}
	if v.TimerEnabled {
		h.stats.timer = v.TimerSeconds
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.env.Generator == nil:
		return MascotAlert
	case h.stats.best > 0:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	if h.env.Generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
