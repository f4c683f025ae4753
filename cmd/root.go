package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "triviaz",
	Short: "LLM-generated trivia quizzes",
	Long: `Triviaz generates multiple-choice trivia questions on any topic with an LLM
and quizzes you on them in the terminal.

Set one of TRIVIAZ_OPENAI_API_KEY, TRIVIAZ_GEMINI_API_KEY, TRIVIAZ_ANTHROPIC_API_KEY
or TRIVIAZ_OPENROUTER_API_KEY (the unprefixed variants are discovered too).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/triviaz/config.yaml)")
	flags.String("db", "", "Record events to this SQLite file instead of memory (overrides TRIVIAZ_DB)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Append logs to this file")

	rootCmd.Flags().Bool("no-splash", false, "Skip the intro animation")
	playCmd.Flags().Bool("no-splash", false, "Skip the intro animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flags,
// which take precedence over both.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	return cfg, nil
}

// resolveDBPath returns the event database for the inspection commands:
// the configured path, else the default XDG location.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	return store.DefaultDBPath()
}
