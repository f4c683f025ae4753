package quiz

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty calibrates generated questions.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyHard}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, moderate, or hard", s)
}

const (
	MinQuestionCount     = 1
	MaxQuestionCount     = 60
	DefaultQuestionCount = 10

	MinTimerSeconds     = 1
	MaxTimerSeconds     = 60
	DefaultTimerSeconds = 15
)

// Settings are the session-scoped quiz options chosen by the user.
type Settings struct {
	Difficulty    Difficulty `yaml:"difficulty" json:"difficulty"`
	QuestionCount int        `yaml:"count" json:"count"`
	UseTimer      bool       `yaml:"timer" json:"timer"`
	TimerSeconds  int        `yaml:"timer_seconds" json:"timerSeconds"`
}

// DefaultSettings returns moderate difficulty, ten questions, timer off.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:    DifficultyModerate,
		QuestionCount: DefaultQuestionCount,
		UseTimer:      false,
		TimerSeconds:  DefaultTimerSeconds,
	}
}

// Validate checks every field against its bounds.
func (s Settings) Validate() error {
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return err
	}
	if s.QuestionCount < MinQuestionCount || s.QuestionCount > MaxQuestionCount {
		return fmt.Errorf("question count %d out of range %d-%d",
			s.QuestionCount, MinQuestionCount, MaxQuestionCount)
	}
	if s.TimerSeconds < MinTimerSeconds || s.TimerSeconds > MaxTimerSeconds {
		return fmt.Errorf("timer duration %ds out of range %d-%ds",
			s.TimerSeconds, MinTimerSeconds, MaxTimerSeconds)
	}
	return nil
}

// TimerDuration returns the per-question time budget.
func (s Settings) TimerDuration() time.Duration {
	return time.Duration(s.TimerSeconds) * time.Second
}
