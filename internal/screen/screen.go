package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Generator fills a session with freshly generated questions.
type Generator interface {
	Apply(ctx context.Context, sess *quiz.Session, topic string, difficulty quiz.Difficulty, count int) (int, error)
}

// Env is the state shared by every screen of one TUI run.
type Env struct {
	Session *quiz.Session
	// Generator is nil when no LLM provider is configured.
	Generator Generator
	// Settings is mutated in place by the settings screen.
	Settings *quiz.Settings
	Logger   logrus.FieldLogger
}

// EscInterceptor is an optional interface for screens that need Esc for
// themselves, such as cancelling in-flight work, instead of going back.
type EscInterceptor interface {
	InterceptsEsc() bool
}
