package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/app"
	"github.com/abhisek/triviaz/internal/screen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive quiz (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI builds dependencies and launches the terminal UI.
func runTUI(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	settings := d.cfg.Quiz
	env := &screen.Env{
		Session:  d.newSession(),
		Settings: &settings,
		Logger:   d.logger,
	}
	if d.service != nil {
		env.Generator = d.service
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	d.logger.Info("starting tui")
	return app.Run(env, !noSplash)
}
