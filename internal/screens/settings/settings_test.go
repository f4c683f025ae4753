package settings

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/screen"
)

func newEnv() *screen.Env {
	st := quiz.DefaultSettings()
	return &screen.Env{
		Session:  quiz.NewSession(quiz.NewLeaderboard()),
		Settings: &st,
	}
}

func press(s *SettingsScreen, codes ...rune) {
	for _, c := range codes {
		s.Update(tea.KeyPressMsg{Code: c})
	}
}

func TestCycleDifficulty(t *testing.T) {
	env := newEnv()
	s := New(env)

	press(s, tea.KeyRight)
	if env.Settings.Difficulty != quiz.DifficultyHard {
		t.Errorf("difficulty = %s, want Hard", env.Settings.Difficulty)
	}
	press(s, tea.KeyRight)
	if env.Settings.Difficulty != quiz.DifficultyEasy {
		t.Errorf("difficulty = %s, want wrap to Easy", env.Settings.Difficulty)
	}
	press(s, tea.KeyLeft)
	if env.Settings.Difficulty != quiz.DifficultyHard {
		t.Errorf("difficulty = %s, want wrap back to Hard", env.Settings.Difficulty)
	}
}

func TestQuestionCountClamped(t *testing.T) {
	env := newEnv()
	env.Settings.QuestionCount = quiz.MaxQuestionCount
	s := New(env)

	press(s, tea.KeyDown, tea.KeyRight)
	if env.Settings.QuestionCount != quiz.MaxQuestionCount {
		t.Errorf("count = %d, want clamp at %d", env.Settings.QuestionCount, quiz.MaxQuestionCount)
	}

	env.Settings.QuestionCount = quiz.MinQuestionCount
	press(s, tea.KeyLeft)
	if env.Settings.QuestionCount != quiz.MinQuestionCount {
		t.Errorf("count = %d, want clamp at %d", env.Settings.QuestionCount, quiz.MinQuestionCount)
	}
}

func TestTimerAppliedToSession(t *testing.T) {
	env := newEnv()
	s := New(env)

	press(s, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	press(s, tea.KeyDown, tea.KeyRight, tea.KeyRight)

	if !env.Settings.UseTimer || env.Settings.TimerSeconds != quiz.DefaultTimerSeconds+2 {
		t.Fatalf("settings = %+v", *env.Settings)
	}
	on, d := env.Session.TimerEnabled()
	if !on || d != time.Duration(quiz.DefaultTimerSeconds+2)*time.Second {
		t.Errorf("session timer = %v %v", on, d)
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "On") {
		t.Errorf("view missing timer state:\n%s", view)
	}
}
