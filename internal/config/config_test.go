package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/quiz"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"TRIVIAZ_LLM_PROVIDER", "TRIVIAZ_OPENAI_API_KEY", "TRIVIAZ_DB", "TRIVIAZ_LOG_LEVEL",
		"TRIVIAZ_DIFFICULTY", "TRIVIAZ_QUESTION_COUNT", "TRIVIAZ_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, quiz.DefaultSettings(), cfg.Quiz)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, `
llm:
  provider: gemini
  timeout: 30s
  gemini:
    api_key: g-key
quiz:
  difficulty: hard
  count: 20
  timer: true
  timer_seconds: 30
log:
  level: debug
  format: json
store:
  path: /tmp/triviaz-test.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model, "unset keys keep defaults")
	assert.Equal(t, quiz.DifficultyHard, cfg.Quiz.Difficulty)
	assert.Equal(t, 20, cfg.Quiz.QuestionCount)
	assert.True(t, cfg.Quiz.UseTimer)
	assert.Equal(t, 30, cfg.Quiz.TimerSeconds)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/triviaz-test.db", cfg.Store.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "quiz:\n  count: 20\nlog:\n  level: warn\n")
	t.Setenv("TRIVIAZ_QUESTION_COUNT", "5")
	t.Setenv("TRIVIAZ_LOG_LEVEL", "debug")
	t.Setenv("TRIVIAZ_DIFFICULTY", "easy")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Quiz.QuestionCount)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, quiz.DifficultyEasy, cfg.Quiz.Difficulty)
}

func TestLoad_DiscoversKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.True(t, cfg.LLM.HasKey())
}

func TestLoad_Errors(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit missing file")

	_, err = Load(writeFile(t, "quiz: [not a map"))
	assert.Error(t, err, "malformed yaml")

	_, err = Load(writeFile(t, "quiz:\n  count: 61\n"))
	assert.ErrorContains(t, err, "question count")

	_, err = Load(writeFile(t, "quiz:\n  difficulty: impossible\n"))
	assert.ErrorContains(t, err, "difficulty")

	_, err = Load(writeFile(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "format")
}
