package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/adapt/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Adaptive learning decision engine",
	Long: "Adapt drives one learner's study session: it selects knowledge units by " +
		"item response theory, tracks mastery and spaced-repetition schedules, and " +
		"persists everything as JSON files in a data directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides ADAPT_DATA_DIR env var)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using the --data flag (highest
// priority), then ADAPT_DATA_DIR, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, nil
	}
	return store.DefaultDataDir()
}
