package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/console"
	"github.com/abhisek/triviaz/internal/quiz"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Generate questions on a topic and quiz on stdin/stdout",
	Example: `  triviaz ask --topic "rivers of Europe" --count 5
  triviaz ask --topic jazz --difficulty hard --timer 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()
		if d.service == nil {
			return errors.New("no LLM provider configured: set an API key (see triviaz --help)")
		}

		settings, err := askSettings(cmd, d.cfg.Quiz)
		if err != nil {
			return err
		}
		topic, _ := cmd.Flags().GetString("topic")

		sess := d.newSession()
		if err := sess.SetTimer(settings.UseTimer, settings.TimerDuration()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generating %d %s questions about %q...\n", settings.QuestionCount, settings.Difficulty, topic)
		n, err := d.service.Apply(ctx, sess, topic, settings.Difficulty, settings.QuestionCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Got %d questions.\n", n)

		p := &console.Player{Session: sess, In: cmd.InOrStdin(), Out: out, Logger: d.logger}
		_, err = p.Play(ctx)
		return err
	},
}

// askSettings applies the command's flags on top of the configured quiz
// settings.
func askSettings(cmd *cobra.Command, base quiz.Settings) (quiz.Settings, error) {
	st := base
	if cmd.Flags().Changed("count") {
		st.QuestionCount, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("difficulty") {
		v, _ := cmd.Flags().GetString("difficulty")
		d, err := quiz.ParseDifficulty(v)
		if err != nil {
			return st, err
		}
		st.Difficulty = d
	}
	if cmd.Flags().Changed("timer") {
		secs, _ := cmd.Flags().GetInt("timer")
		st.UseTimer = secs > 0
		if secs > 0 {
			st.TimerSeconds = secs
		}
	}
	return st, st.Validate()
}

func init() {
	askCmd.Flags().String("topic", "", "Quiz topic (required)")
	askCmd.Flags().Int("count", quiz.DefaultQuestionCount, "Number of questions (1-60)")
	askCmd.Flags().String("difficulty", "", "easy, moderate or hard")
	askCmd.Flags().Int("timer", 0, "Seconds per question (1-60); 0 disables the timer")
	_ = askCmd.MarkFlagRequired("topic")
}
