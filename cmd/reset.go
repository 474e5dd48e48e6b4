package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/adapt/internal/journal"
	"github.com/abhisek/adapt/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the session state and student-state exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		targets := []string{filepath.Join(dir, store.SessionFile)}
		exports, _ := filepath.Glob(filepath.Join(dir, store.StudentStatePrefix+"*.json"))
		targets = append(targets, exports...)
		if withJournal, _ := cmd.Flags().GetBool("journal"); withJournal {
			targets = append(targets, filepath.Join(dir, journal.DBFile))
		}

		removed := 0
		for _, path := range targets {
			err := os.Remove(path)
			if err == nil {
				removed++
				continue
			}
			if !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", path, err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s) from %s\n", removed, dir)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("journal", false, "Also delete the answer journal database")
}
