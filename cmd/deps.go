package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/logging"
	"github.com/abhisek/triviaz/internal/questiongen"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/store"
)

// deps holds everything a quiz front end needs.
type deps struct {
	cfg    config.Config
	logger *logrus.Logger
	store  *store.Store
	// service is nil when no LLM provider is configured.
	service *questiongen.Service

	closers []io.Closer
}

// buildDeps loads config, then opens the logger, the event log and the
// generation service. Headless commands log to stderr; the TUI logs to a
// file or nowhere since it owns the terminal.
func buildDeps(cmd *cobra.Command, headless bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if headless {
		opts.Fallback = os.Stderr
	}
	logger, logCloser, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	d := &deps{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		logger.WithError(err).Warn("LLM provider not configured; question generation is unavailable")
		return d, nil
	}
	logger.WithFields(logrus.Fields{
		"provider": cfg.LLM.Provider,
		"model":    provider.ModelID(),
	}).Info("LLM provider ready")

	source := questiongen.New(provider, questiongen.DefaultConfig())
	d.service = questiongen.NewService(source, cfg.LLM.Timeout, logger)
	return d, nil
}

// newSession creates a session that records its transitions in the event
// log and starts with the configured timer.
func (d *deps) newSession() *quiz.Session {
	sess := quiz.NewSession(quiz.NewLeaderboard(),
		quiz.WithObserver(store.QuizRecorder(d.store.EventRepo(), d.logger)))
	st := d.cfg.Quiz
	_ = sess.SetTimer(st.UseTimer, st.TimerDuration()) // validated by config.Load
	return sess
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i].Close()
	}
}
