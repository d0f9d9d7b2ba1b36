package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "1.0.0"

// NewRootCommand creates and returns the root cobra command for pngseq
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pngseq",
		Short: "Rename PNG files into a numbered sequence",
		Long: `pngseq renames the PNG files in a directory into a numbered sequence
(<prefix><basename>_<index><suffix>.png).

Renames run in two phases through temporary names, so no step can ever
overwrite a file that is itself waiting to be renamed - renumbering a
sequence in place is safe. Every completed batch is written to a ledger
(rename_log.csv) that drives undo, and summarized in a local history
database.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewPreviewCommand())
	cmd.AddCommand(NewRenameCommand())
	cmd.AddCommand(NewUndoCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewUpdateCommand())

	return cmd
}
