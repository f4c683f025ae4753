package play

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// QuizScreen plays the session one question at a time.
type QuizScreen struct {
	env     *screen.Env
	view    quiz.View
	options components.OptionList
	shown   int // question number the option list was built for
	chosen  string
	tickID  int
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

func NewQuiz(env *screen.Env) *QuizScreen {
	return &QuizScreen{env: env}
}

// Init shows the current question and starts its clock. Re-entering a
// finished run goes straight to the results.
func (s *QuizScreen) Init() tea.Cmd {
	s.errMsg = ""
	switch s.env.Session.State() {
	case quiz.StateEmpty:
		s.errMsg = "No questions yet. Generate some first."
		s.refresh()
		return nil
	case quiz.StateResults:
		return router.Replace(NewResults(s.env))
	}

	if err := s.env.Session.StartQuestion(); err != nil {
		s.errMsg = err.Error()
	}
	s.refresh()
	return s.startTicking()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.view.Checked {
		label := "Next question"
		if s.view.IsLast {
			label = "Finish quiz"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Pause"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D", Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Pause"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)

	case tea.KeyMsg:
		if s.view.State != quiz.StateActive.String() {
			return s, nil
		}
		if s.view.Checked {
			if msg.String() == "enter" {
				return s.advance()
			}
			return s, nil
		}
		if msg.String() == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.ID != s.tickID {
		return s, nil
	}
	if s.view.Checked || !s.view.TimerEnabled {
		return s, nil
	}

	expired, err := s.env.Session.TimeExpire()
	if err != nil && !errors.Is(err, quiz.ErrInvalidTransition) {
		s.errMsg = err.Error()
	}
	s.refresh()
	if expired || err != nil {
		return s, nil
	}
	return s, s.tick()
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	s.chosen = s.options.Current()
	if _, err := s.env.Session.SubmitAnswer(s.chosen); err != nil {
		// The timer may have closed the question first.
		s.errMsg = ""
		if !errors.Is(err, quiz.ErrInvalidTransition) {
			s.errMsg = err.Error()
		}
	}
	s.refresh()
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.env.Session.Advance(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if s.env.Session.State() == quiz.StateResults {
		return s, router.Replace(NewResults(s.env))
	}
	if err := s.env.Session.StartQuestion(); err != nil {
		s.errMsg = err.Error()
	}
	s.refresh()
	return s, s.startTicking()
}

// refresh re-reads the session and rebuilds the option list when the
// question changed.
func (s *QuizScreen) refresh() {
	s.view = s.env.Session.Snapshot()
	if s.view.QuestionNumber != s.shown {
		s.options = components.NewOptionList(s.view.Options)
		s.shown = s.view.QuestionNumber
		s.chosen = ""
	}
	if s.view.Checked && !s.options.Revealed() {
		chosen := s.chosen
		if s.view.TimedOut {
			chosen = ""
		}
		s.options.Reveal(s.view.CorrectOption, chosen)
	}
}

// startTicking begins a new countdown loop and retires any older one.
func (s *QuizScreen) startTicking() tea.Cmd {
	s.tickID++
	if !s.view.TimerEnabled || s.view.Checked {
		return nil
	}
	return s.tick()
}

func (s *QuizScreen) tick() tea.Cmd {
	id := s.tickID
	return tea.Tick(quiz.DefaultTickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg{ID: id, Time: t}
	})
}

func (s *QuizScreen) View(width, height int) string {
	v := s.view
	if v.State == quiz.StateEmpty.String() || v.Question == "" {
		msg := s.errMsg
		if msg == "" {
			msg = "No questions yet."
		}
		return layout.Centered("\n\n\n"+msg, width, theme.TextDim)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", v.QuestionNumber, v.TotalQuestions))
	if v.TimerEnabled {
		info += "   " + renderTimer(v)
	}
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", v.Progress, true, cw-8).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 8).
		Render(v.Question))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	if v.Checked {
		b.WriteString("\n")
		b.WriteString(renderFeedback(v, cw-8))
		b.WriteString("\n\n")
		label := "Next Question"
		if v.IsLast {
			label = "Finish Quiz"
		}
		b.WriteString(components.ArcadeButton(label, true, 20))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}

func renderTimer(v quiz.View) string {
	text := fmt.Sprintf("⏱ %ds", v.RemainingSeconds)
	if v.Checked {
		text = "⏱ --"
	}
	if v.RemainingSeconds <= 5 {
		return theme.TimerLow.Render(text)
	}
	return theme.TimerOK.Render(text)
}

func renderFeedback(v quiz.View, width int) string {
	var verdict string
	switch {
	case v.TimedOut:
		verdict = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Time's up!")
	case v.Correct != nil && *v.Correct:
		verdict = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Correct!")
	default:
		verdict = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Incorrect")
	}

	out := verdict
	if v.Correct == nil || !*v.Correct {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Correct answer: "+v.CorrectOption)
	}
	if v.Explanation != "" {
		out += "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(v.Explanation)
	}
	return out
}
