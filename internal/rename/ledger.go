package rename

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gouravbhagat/pngseq/internal/filelock"
)

// LedgerName is the fixed ledger filename written inside the renamed
// directory. The CSV layout (old_path,new_path,timestamp) is a persisted
// contract: any pngseq build can undo a ledger written by any other.
const LedgerName = "rename_log.csv"

// ErrLedgerNotFound indicates there is no ledger at the requested path,
// so there is nothing to undo.
var ErrLedgerNotFound = errors.New("rename: no rename ledger found")

// UndoneRename records one reversal performed by Undo.
type UndoneRename struct {
	FinalPath    string
	OriginalPath string
}

// LedgerPath returns the ledger location for a directory.
func LedgerPath(dir string) string {
	return filepath.Join(dir, LedgerName)
}

// WriteLedger serializes a completed batch to path as CSV with a
// old_path,new_path,timestamp header and RFC 3339 timestamps. The write
// is atomic (temp file plus rename) so a crash never leaves a truncated
// ledger. Any prior ledger at path is overwritten: only the most recent
// batch is undoable, by design.
func WriteLedger(completed []CompletedRename, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"old_path", "new_path", "timestamp"}); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, c := range completed {
		record := []string{c.OriginalPath, c.FinalPath, c.Timestamp.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write ledger record for %s: %w", c.OriginalPath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}

	if err := filelock.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write ledger %s: %w", path, err)
	}
	return nil
}

// Undo replays the ledger at path in file order, renaming each new_path
// back to its old_path. Records whose new_path no longer exists are
// skipped: the file was already moved back or removed externally. The
// ledger file is deleted once every record has been processed.
//
// A failing rename-back aborts immediately with the reversals performed
// so far; the partial undo is not rolled back and the ledger stays in
// place so a later attempt can retry the remaining records.
func Undo(path string) ([]UndoneRename, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	records, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	if len(records) > 0 {
		// Drop the header row.
		records = records[1:]
	}

	var undone []UndoneRename
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		oldPath, newPath := record[0], record[1]

		if _, err := os.Stat(newPath); err != nil {
			continue
		}
		if err := os.Rename(newPath, oldPath); err != nil {
			return undone, fmt.Errorf("undo %s to %s: %w", newPath, oldPath, err)
		}
		undone = append(undone, UndoneRename{FinalPath: newPath, OriginalPath: oldPath})
	}

	if err := os.Remove(path); err != nil {
		return undone, fmt.Errorf("remove ledger %s: %w", path, err)
	}
	return undone, nil
}
