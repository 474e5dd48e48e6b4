package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adapt/internal/catalog"
	"github.com/abhisek/adapt/internal/config"
	"github.com/abhisek/adapt/internal/journal"
	"github.com/abhisek/adapt/internal/session"
	"github.com/abhisek/adapt/internal/store"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one session turn from a JSON request on stdin",
	Long: "Reads a request object from stdin (empty input means \"grade the active " +
		"unit\"), advances the session one turn, and writes the response envelope " +
		"to stdout as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// runProcess wires the data directory, catalog, config, and journal into an
// engine and executes a single turn.
func runProcess(cmd *cobra.Command) error {
	ctx := cmd.Context()

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

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	j, err := journal.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: open journal: %v\n", err)
		j = nil
	} else {
		defer j.Close()
	}

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req, err := session.ParseRequest(raw)
	if err != nil {
		return err
	}

	resp, err := session.NewEngine(repo, units, cfg, j).ProcessRequest(ctx, req)
	if err != nil {
		var lockErr *store.ErrLockTimeout
		if errors.As(err, &lockErr) {
			return fmt.Errorf("another process holds the session lock, try again: %w", err)
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
