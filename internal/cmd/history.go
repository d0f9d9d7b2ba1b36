package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/history"
)

// NewHistoryCommand creates and returns the history subcommand
func NewHistoryCommand() *cobra.Command {
	var limit int
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "history <directory>",
		Short: "List past rename batches recorded for a directory",
		Long: `Show the rename batches recorded in the directory's history database,
newest first. History is an audit trail only: undo is always driven by
the rename_log.csv ledger, and batches older than the most recent one
cannot be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(args[0], limit, showFiles, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of batches to show (0 = all)")
	cmd.Flags().BoolVar(&showFiles, "files", false, "Also list the per-file renames of each batch")
	return cmd
}

// runHistory prints the recorded batches for a directory
func runHistory(dir string, limit int, showFiles bool, output io.Writer) error {
	store, err := history.NewStore(history.DBPath(dir))
	if err != nil {
		return err
	}
	defer store.Close()

	batches, err := store.ListBatches(limit)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Fprintf(output, "No rename batches recorded for %s\n", dir)
		return nil
	}

	for _, b := range batches {
		status := ""
		if b.Undone {
			status = " (undone)"
		}
		fmt.Fprintf(output, "%s  %s  %d file(s)  basename=%q start=%d sort=%s%s\n",
			b.CreatedAt.Format("2006-01-02 15:04:05"), shortID(b.ID), b.FileCount,
			b.Basename, b.StartIndex, b.SortMode, status)

		if showFiles {
			files, err := store.BatchFiles(b.ID)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(output, "    %s -> %s\n", f.OriginalPath, f.FinalPath)
			}
		}
	}
	return nil
}

// shortID abbreviates a batch UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
