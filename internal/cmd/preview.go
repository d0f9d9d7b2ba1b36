package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/display"
	"github.com/gouravbhagat/pngseq/internal/fileutil"
	"github.com/gouravbhagat/pngseq/internal/rename"
)

// NewPreviewCommand creates and returns the preview subcommand
func NewPreviewCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "preview <directory>",
		Short: "Show the planned renames without touching any file",
		Long: `Plan the rename batch for a directory and print the old-name/new-name
table, or the list of naming collisions that would make the batch unsafe.

Preview never mutates the filesystem. Exit code: 0 if the plan is safe,
1 if collisions were found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(args[0], flags, cmd, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	flags.register(cmd)
	return cmd
}

// runPreview executes the plan-and-detect pipeline and renders the result
func runPreview(dir string, flags *batchFlags, cmd *cobra.Command, output io.Writer) error {
	params, mode, _, err := flags.resolve(cmd, dir)
	if err != nil {
		return err
	}

	files, err := fileutil.ListPNGFiles(dir, mode)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(output, "No PNG files found in %s\n", dir)
		return nil
	}

	plan, err := rename.Plan(fileutil.Paths(files), params)
	if err != nil {
		return err
	}

	collisions := rename.Detect(plan, dir)
	if len(collisions) > 0 {
		display.CollisionReport(output, collisions)
		return fmt.Errorf("found %d naming collision(s)", len(collisions))
	}

	display.PreviewTable(output, plan)
	fmt.Fprintf(output, "\n%d file(s) ready to rename\n", len(plan))
	return nil
}
