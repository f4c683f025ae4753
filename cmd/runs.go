package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded quiz events (start, answer, timeout, results...)",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		runID, _ := cmd.Flags().GetString("run")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryQuizEvents(cmd.Context(), store.QueryOpts{RunID: runID, Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No quiz events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-36s  %-9s  %3s  %-3s  %8s  %8s\n",
			"ID", "Timestamp", "Run", "Action", "Q", "OK", "Seconds", "Score")
		fmt.Println(strings.Repeat("─", 104))
		for _, e := range events {
			ok := ""
			if e.Action == "answer" {
				ok = "✗"
				if e.Correct {
					ok = "✓"
				}
			}
			fmt.Printf("%-5d  %-19s  %-36s  %-9s  %3d  %-3s  %8.2f  %8.2f\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.RunID,
				e.Action,
				e.QuestionIndex+1,
				ok,
				e.Seconds,
				e.Score,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 50, "Number of events to show")
	runsCmd.Flags().String("run", "", "Only show events for this run ID")
}
