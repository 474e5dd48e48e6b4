package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/session"
	"github.com/abhisek/adapt/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a progress summary from the exported student state",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		repo, err := store.NewFileRepo(dir)
		if err != nil {
			return fmt.Errorf("open data dir: %w", err)
		}

		units, err := catalog.Load(dir)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		export, err := repo.LoadStudentState(cmd.Context())
		if err != nil {
			return fmt.Errorf("load student state: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(session.BuildSummary(export, units, time.Now()))
	},
}
