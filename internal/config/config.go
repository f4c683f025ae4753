// Package config loads triviaz settings from defaults, an optional YAML
// file and TRIVIAZ_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/quiz"
)

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config    `yaml:"llm"`
	Quiz   quiz.Settings `yaml:"quiz"`
	Log    LogConfig     `yaml:"log"`
	Store  StoreConfig   `yaml:"store"`
	Server ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// StoreConfig selects the event log database. An empty Path keeps the log
// in memory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:    llm.DefaultConfig(),
		Quiz:   quiz.DefaultSettings(),
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/triviaz/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "triviaz", "config.yaml")
}

// Load builds a Config. When path is empty the default path is tried and
// may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
		}
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if v := os.Getenv("TRIVIAZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRIVIAZ_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TRIVIAZ_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("TRIVIAZ_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TRIVIAZ_DIFFICULTY"); v != "" {
		if d, err := quiz.ParseDifficulty(v); err == nil {
			cfg.Quiz.Difficulty = d
		}
	}
	if v := os.Getenv("TRIVIAZ_QUESTION_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Quiz.QuestionCount = n
		}
	}
}

// Validate checks the quiz and logging sections. The LLM key is checked
// only when a command needs to generate.
func (c *Config) Validate() error {
	d, err := quiz.ParseDifficulty(string(c.Quiz.Difficulty))
	if err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	c.Quiz.Difficulty = d
	if err := c.Quiz.Validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}
