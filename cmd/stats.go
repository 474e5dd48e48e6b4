package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adapt/internal/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics from the answer journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		j, err := journal.Open(dir)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		stats, err := j.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("read stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Answers:  %d\n", stats.TotalAnswers)
		fmt.Fprintf(out, "Correct:  %d\n", stats.CorrectAnswers)
		fmt.Fprintf(out, "Accuracy: %.1f%%\n", stats.Accuracy*100)
		if stats.LastAnswerAt != "" {
			fmt.Fprintf(out, "Last answer: %s\n", stats.LastAnswerAt)
		}

		limit, _ := cmd.Flags().GetInt("recent")
		if limit <= 0 {
			return nil
		}
		recent, err := j.RecentAnswers(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("read recent answers: %w", err)
		}
		if len(recent) > 0 {
			fmt.Fprintln(out, "\nRecent:")
		}
		for _, ev := range recent {
			mark := "✗"
			if ev.IsCorrect {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %s (theta %.2f) %s\n", mark, ev.UnitID, ev.ThetaAfter, ev.CreatedAt)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 0, "Also list the N most recent answers")
}
