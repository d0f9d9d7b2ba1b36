package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/filelock"
	"github.com/gouravbhagat/pngseq/internal/history"
	"github.com/gouravbhagat/pngseq/internal/rename"
)

// NewUndoCommand creates and returns the undo subcommand
func NewUndoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <directory>",
		Short: "Undo the most recent rename batch in a directory",
		Long: `Replay the directory's ledger (rename_log.csv) in reverse direction,
moving every renamed file back to its original name. Files that no
longer exist under their renamed name are skipped. The ledger is deleted
once the undo completes, so each batch can be undone exactly once.

If a file cannot be moved back, undo stops there: the reversals already
performed stay in place and the ledger is kept so the remaining records
can be retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// runUndo replays and removes the directory's ledger
func runUndo(dir string, output io.Writer) error {
	lock := filelock.NewFileLock(filepath.Join(dir, lockName))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another pngseq batch is already running in %s", dir)
	}
	defer lock.Unlock()

	undone, err := rename.Undo(rename.LedgerPath(dir))
	if err != nil {
		if errors.Is(err, rename.ErrLedgerNotFound) {
			return fmt.Errorf("nothing to undo: no ledger found in %s", dir)
		}
		return err
	}

	markHistoryUndone(dir, output)

	fmt.Fprintf(output, "Undone %d rename(s) in %s\n", len(undone), dir)
	return nil
}

// markHistoryUndone flags the latest history batch as undone.
// Best-effort: the ledger already drove the undo, history only reports.
func markHistoryUndone(dir string, output io.Writer) {
	store, err := history.NewStore(history.DBPath(dir))
	if err != nil {
		fmt.Fprintf(output, "Warning: history could not be opened: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.MarkLatestUndone(dir); err != nil {
		fmt.Fprintf(output, "Warning: history could not be updated: %v\n", err)
	}
}
