package play

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/questiongen"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

const topicCharLimit = 120

// GenerateScreen asks for a topic and fills the session with a batch of
// generated questions.
type GenerateScreen struct {
	env     *screen.Env
	input   components.TextInput
	spinner spinner.Model

	generating bool
	cancel     context.CancelFunc
	loading    string

	added  int
	errMsg string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)
var _ screen.EscInterceptor = (*GenerateScreen)(nil)

func NewGenerate(env *screen.Env) *GenerateScreen {
	return &GenerateScreen{
		env:   env,
		input: components.NewTextInput("e.g. Rivers of Europe", topicCharLimit),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeCyan)),
		),
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *GenerateScreen) Title() string {
	return "Generate Questions"
}

func (s *GenerateScreen) InterceptsEsc() bool {
	return s.generating
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.generating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.added > 0:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Take quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.generating {
			if msg.String() == "esc" && s.cancel != nil {
				s.cancel()
			}
			return s, nil
		}
		if msg.String() == "enter" {
			if s.added > 0 && s.input.Value() == "" {
				return s, router.Replace(NewQuiz(s.env))
			}
			return s.start()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// start validates the topic and launches generation in the background.
func (s *GenerateScreen) start() (screen.Screen, tea.Cmd) {
	topic := s.input.Value()
	if topic == "" {
		s.errMsg = questiongen.EmptyTopicMessage
		return s, nil
	}
	if s.env.Generator == nil {
		s.errMsg = "No LLM provider configured. Set an API key and restart."
		return s, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.generating = true
	s.errMsg = ""
	s.loading = questiongen.LoadingMessage()

	env := s.env
	settings := *env.Settings
	run := func() tea.Msg {
		defer cancel()
		n, err := env.Generator.Apply(ctx, env.Session, topic, settings.Difficulty, settings.QuestionCount)
		return generatedMsg{Added: n, Err: err}
	}
	return s, tea.Batch(s.spinner.Tick, run)
}

func (s *GenerateScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	s.cancel = nil

	if msg.Err != nil {
		s.errMsg = generationMessage(msg.Err)
		if s.env.Logger != nil {
			s.env.Logger.WithError(msg.Err).Warn("question generation failed")
		}
		return s, nil
	}
	s.added += msg.Added
	s.input.Reset()
	return s, nil
}

func generationMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "Generation cancelled."
	}
	var gerr *questiongen.GenerationError
	if errors.As(err, &gerr) && gerr.Stage == questiongen.StageInput {
		return gerr.Message
	}
	return err.Error()
}

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.env.Settings

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render("What should the quiz be about?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d questions · %s", st.QuestionCount, st.Difficulty)))
	b.WriteString("\n\n")

	if s.generating {
		b.WriteString(s.spinner.View() + " " + s.loading)
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Esc to cancel"))
	} else {
		b.WriteString(s.input.View())
	}

	if s.added > 0 && !s.generating {
		total := len(s.env.Session.Questions())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("Added %d questions (%d queued).", s.added, total)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Enter another topic, or press Enter to start."))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw - 8).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}
