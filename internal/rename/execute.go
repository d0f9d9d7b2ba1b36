package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// stagePrefix marks the temporary names used during the staging phase.
const stagePrefix = ".pngseq-stage-"

// CompletedRename records one finished rename within a batch. Entries
// whose name was already correct appear with identical original and
// final paths. Timestamp is the same for every entry of a batch.
type CompletedRename struct {
	OriginalPath string
	FinalPath    string
	Timestamp    time.Time
}

// ExecError reports a failed batch execution. Err is the rename
// operation that failed. Unrestored lists temp paths the rollback could
// not move back to their original names; those files remain on disk
// under their staging names and need manual recovery. Rollback is
// best-effort, so Unrestored being non-empty is an accepted outcome of
// a doubly-failing batch, not a silent one.
type ExecError struct {
	Err        error
	Unrestored []string
}

func (e *ExecError) Error() string {
	if len(e.Unrestored) > 0 {
		return fmt.Sprintf("rename failed: %v (rollback could not restore %d file(s): %s)",
			e.Err, len(e.Unrestored), strings.Join(e.Unrestored, ", "))
	}
	return fmt.Sprintf("rename failed: %v", e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// phase tracks the executor's position in the two-phase protocol so a
// failure rolls back exactly the staged-but-not-committed subset.
type phase int

const (
	phaseStaging phase = iota
	phaseCommitting
	phaseFailed
)

// stagedOp is the explicit in-memory staging record: where a source was
// parked and where it came from and is going. Carrying this mapping
// through the call means the original name never has to be recovered
// from the temp filename's text.
type stagedOp struct {
	planIndex    int
	tempPath     string
	originalPath string
	targetName   string
}

// Execute performs a validated plan against dir and returns the
// completed renames in plan order, all stamped with one batch timestamp.
// Callers must run Detect first; Execute does not re-validate.
//
// The rename runs in two phases. Staging parks every file that needs a
// new name under a unique temporary name, so that the commit phase can
// only ever rename a staged temp onto its target, never overwrite a file
// that is itself waiting to be renamed. This makes in-place renumbering
// safe even when the old and new name sets overlap. Files already
// carrying their target name are skipped and count as completed no-ops.
//
// If any rename fails in either phase, the staged-but-not-committed
// files are moved back to their original names and the failure surfaces
// as an *ExecError. Files committed before the failure keep their final
// names. A rollback rename that itself fails is recorded on
// ExecError.Unrestored rather than aborting the remaining restores.
func Execute(plan []PlanEntry, dir string) ([]CompletedRename, error) {
	batchTime := time.Now()
	completed := make([]CompletedRename, len(plan))

	var staged []stagedOp
	var failure error
	state := phaseStaging

	for i, entry := range plan {
		if filepath.Base(entry.SourcePath) == entry.TargetName {
			completed[i] = CompletedRename{
				OriginalPath: entry.SourcePath,
				FinalPath:    entry.SourcePath,
				Timestamp:    batchTime,
			}
			continue
		}

		tempPath := filepath.Join(dir, stagePrefix+uuid.NewString())
		if err := os.Rename(entry.SourcePath, tempPath); err != nil {
			state = phaseFailed
			failure = fmt.Errorf("stage %s: %w", entry.SourcePath, err)
			break
		}
		staged = append(staged, stagedOp{
			planIndex:    i,
			tempPath:     tempPath,
			originalPath: entry.SourcePath,
			targetName:   entry.TargetName,
		})
	}

	committed := 0
	if state != phaseFailed {
		state = phaseCommitting
		for _, op := range staged {
			finalPath := filepath.Join(dir, op.targetName)
			if err := os.Rename(op.tempPath, finalPath); err != nil {
				state = phaseFailed
				failure = fmt.Errorf("commit %s as %s: %w", op.originalPath, op.targetName, err)
				break
			}
			completed[op.planIndex] = CompletedRename{
				OriginalPath: op.originalPath,
				FinalPath:    finalPath,
				Timestamp:    batchTime,
			}
			committed++
		}
	}

	if state == phaseFailed {
		unrestored := rollback(staged[committed:])
		return nil, &ExecError{Err: failure, Unrestored: unrestored}
	}

	return completed, nil
}

// rollback moves staged files back to their original names, newest
// first. Individual failures are collected instead of aborting so every
// remaining file still gets a restore attempt.
func rollback(ops []stagedOp) []string {
	var unrestored []string
	for i := len(ops) - 1; i >= 0; i-- {
		if err := os.Rename(ops[i].tempPath, ops[i].originalPath); err != nil {
			unrestored = append(unrestored, ops[i].tempPath)
		}
	}
	return unrestored
}
