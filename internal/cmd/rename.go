package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gouravbhagat/pngseq/internal/config"
	"github.com/gouravbhagat/pngseq/internal/display"
	"github.com/gouravbhagat/pngseq/internal/filelock"
	"github.com/gouravbhagat/pngseq/internal/fileutil"
	"github.com/gouravbhagat/pngseq/internal/history"
	"github.com/gouravbhagat/pngseq/internal/logger"
	"github.com/gouravbhagat/pngseq/internal/rename"
)

// lockName is the flock file serializing rename and undo runs against a
// directory.
const lockName = ".pngseq.lock"

// NewRenameCommand creates and returns the rename subcommand
func NewRenameCommand() *cobra.Command {
	flags := &batchFlags{}
	var yes bool

	cmd := &cobra.Command{
		Use:   "rename <directory>",
		Short: "Rename the PNG files in a directory into a numbered sequence",
		Long: `Plan, validate, and execute a rename batch against a directory.

The batch is aborted before any filesystem change if two planned names
collide or a planned name would overwrite an unrelated existing file.
Execution runs in two phases through temporary names so overlapping old
and new name sets cannot clobber each other; a mid-batch failure rolls
the staged files back to their original names.

Every completed batch writes rename_log.csv into the directory. Only the
most recent batch is undoable: running rename again replaces the ledger
and the previous batch can no longer be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args[0], flags, yes, cmd, cmd.OutOrStdout(), cmd.InOrStdin())
		},
		SilenceUsage: true,
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// runRename executes the full plan-detect-execute-ledger pipeline
func runRename(dir string, flags *batchFlags, yes bool, cmd *cobra.Command, output io.Writer, input io.Reader) error {
	params, mode, cfg, err := flags.resolve(cmd, dir)
	if err != nil {
		return err
	}
	log := logger.NewConsoleLogger(output, cfg.LogLevel)

	// The run log is a record for later inspection; a directory where it
	// cannot be created still gets its batch.
	var fileLog *logger.FileLogger
	if fl, err := logger.NewFileLogger(filepath.Join(dir, cfg.LogDir), cfg.LogLevel); err != nil {
		log.LogWarn(fmt.Sprintf("Run log unavailable: %v", err))
	} else {
		fileLog = fl
		defer fileLog.Close()
	}

	// One batch at a time per directory. A held lock means another
	// rename or undo is still running; reject rather than queue.
	lock := filelock.NewFileLock(filepath.Join(dir, lockName))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another pngseq batch is already running in %s", dir)
	}
	defer lock.Unlock()

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
		return fmt.Errorf("aborted: %d naming collision(s)", len(collisions))
	}

	display.PreviewTable(output, plan)

	ledgerPath := rename.LedgerPath(dir)
	if _, err := os.Stat(ledgerPath); err == nil {
		warning := display.Warning{
			Title:   "A ledger from a previous batch exists",
			Message: "Renaming now replaces it; the previous batch can no longer be undone.",
			Files:   []string{ledgerPath},
		}
		warning.Display(output)
	}

	if !yes {
		if !confirm(output, input, fmt.Sprintf("Rename %d file(s)?", len(plan))) {
			fmt.Fprintf(output, "Aborted.\n")
			return nil
		}
	}

	start := time.Now()
	log.LogDebug(fmt.Sprintf("Executing batch of %d file(s) in %s", len(plan), dir))
	if fileLog != nil {
		fileLog.LogInfo(fmt.Sprintf("Executing batch of %d file(s) in %s", len(plan), dir))
	}

	completed, err := rename.Execute(plan, dir)
	if err != nil {
		var execErr *rename.ExecError
		if errors.As(err, &execErr) && len(execErr.Unrestored) > 0 {
			for _, temp := range execErr.Unrestored {
				log.LogError(fmt.Sprintf("Rollback could not restore %s", temp))
				if fileLog != nil {
					fileLog.LogError(fmt.Sprintf("Rollback could not restore %s", temp))
				}
			}
		}
		if fileLog != nil {
			fileLog.LogError(fmt.Sprintf("Batch failed: %v", err))
		}
		return err
	}

	if err := rename.WriteLedger(completed, ledgerPath); err != nil {
		return err
	}

	recordHistory(dir, cfg, len(completed), completed, log)

	renamed, skipped := 0, 0
	for _, c := range completed {
		if c.OriginalPath == c.FinalPath {
			skipped++
		} else {
			renamed++
		}
	}
	log.LogBatchSummary(renamed, skipped, time.Since(start))
	if fileLog != nil {
		for _, c := range completed {
			fileLog.LogDebug(fmt.Sprintf("%s -> %s", c.OriginalPath, c.FinalPath))
		}
		fileLog.LogBatchSummary(renamed, skipped, time.Since(start))
	}
	fmt.Fprintf(output, "Ledger written to %s\n", ledgerPath)
	return nil
}

// confirm asks a yes/no question on the command's input stream.
// Anything other than y/yes counts as no.
func confirm(output io.Writer, input io.Reader, question string) bool {
	fmt.Fprintf(output, "%s [y/N]: ", question)
	scanner := bufio.NewScanner(input)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// recordHistory stores the batch in the history database. History is
// reporting only, so a failure here is logged and the batch still
// succeeds.
func recordHistory(dir string, cfg *config.Config, fileCount int, completed []rename.CompletedRename, log logger.Logger) {
	store, err := history.NewStore(history.DBPath(dir))
	if err != nil {
		log.LogWarn(fmt.Sprintf("Batch completed but history could not be opened: %v", err))
		return
	}
	defer store.Close()

	batch := history.Batch{
		Directory:   dir,
		FileCount:   fileCount,
		Basename:    cfg.Basename,
		StartIndex:  cfg.StartIndex,
		ZeroPadding: cfg.ZeroPadding,
		Prefix:      cfg.Prefix,
		Suffix:      cfg.Suffix,
		SortMode:    cfg.SortMode,
	}
	if _, err := store.RecordBatch(batch, completed); err != nil {
		log.LogWarn(fmt.Sprintf("Batch completed but history could not be recorded: %v", err))
	}
}
