package rename

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// readFile returns the content of path, failing the test on error
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// listNames returns the sorted names present in dir
func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// TestExecuteSimple verifies a plain batch renames every file
func TestExecuteSimple(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "content-a")
	writeFile(t, filepath.Join(dir, "b.png"), "content-b")

	plan := []PlanEntry{
		{SourcePath: filepath.Join(dir, "a.png"), TargetName: "frame_1.png"},
		{SourcePath: filepath.Join(dir, "b.png"), TargetName: "frame_2.png"},
	}

	completed, err := Execute(plan, dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("len(completed) = %d, want 2", len(completed))
	}

	if got := readFile(t, filepath.Join(dir, "frame_1.png")); got != "content-a" {
		t.Errorf("frame_1.png content = %q, want content-a", got)
	}
	if got := readFile(t, filepath.Join(dir, "frame_2.png")); got != "content-b" {
		t.Errorf("frame_2.png content = %q, want content-b", got)
	}

	// Results follow plan order with a single batch timestamp.
	if completed[0].OriginalPath != plan[0].SourcePath {
		t.Errorf("completed[0].OriginalPath = %q", completed[0].OriginalPath)
	}
	if !completed[0].Timestamp.Equal(completed[1].Timestamp) {
		t.Errorf("batch timestamps differ: %v vs %v", completed[0].Timestamp, completed[1].Timestamp)
	}
}

// TestExecuteOverlappingNames verifies renumbering in place, where the
// old and new name sets overlap, never loses a file
func TestExecuteOverlappingNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "frame_1.png"), "one")
	writeFile(t, filepath.Join(dir, "frame_2.png"), "two")
	writeFile(t, filepath.Join(dir, "frame_3.png"), "three")

	// Shift the sequence up by one: every target collides with another
	// entry's source.
	plan := []PlanEntry{
		{SourcePath: filepath.Join(dir, "frame_1.png"), TargetName: "frame_2.png"},
		{SourcePath: filepath.Join(dir, "frame_2.png"), TargetName: "frame_3.png"},
		{SourcePath: filepath.Join(dir, "frame_3.png"), TargetName: "frame_4.png"},
	}

	if _, err := Execute(plan, dir); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "frame_2.png")); got != "one" {
		t.Errorf("frame_2.png content = %q, want one", got)
	}
	if got := readFile(t, filepath.Join(dir, "frame_3.png")); got != "two" {
		t.Errorf("frame_3.png content = %q, want two", got)
	}
	if got := readFile(t, filepath.Join(dir, "frame_4.png")); got != "three" {
		t.Errorf("frame_4.png content = %q, want three", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_1.png")); !os.IsNotExist(err) {
		t.Errorf("frame_1.png still exists after shift")
	}
}

// TestExecuteNoOpEntries verifies already-correct names are skipped but
// still reported as completed
func TestExecuteNoOpEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "frame_1.png"), "one")
	writeFile(t, filepath.Join(dir, "b.png"), "two")

	plan := []PlanEntry{
		{SourcePath: filepath.Join(dir, "frame_1.png"), TargetName: "frame_1.png"},
		{SourcePath: filepath.Join(dir, "b.png"), TargetName: "frame_2.png"},
	}

	completed, err := Execute(plan, dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("len(completed) = %d, want 2", len(completed))
	}
	if completed[0].OriginalPath != completed[0].FinalPath {
		t.Errorf("no-op entry has differing paths: %q -> %q", completed[0].OriginalPath, completed[0].FinalPath)
	}
	if got := readFile(t, filepath.Join(dir, "frame_1.png")); got != "one" {
		t.Errorf("frame_1.png content = %q, want one", got)
	}
}

// TestExecuteRollbackOnStageFailure verifies that a staging failure
// restores every already-staged file to its original name
func TestExecuteRollbackOnStageFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "a")
	writeFile(t, filepath.Join(dir, "b.png"), "b")

	plan := []PlanEntry{
		{SourcePath: filepath.Join(dir, "a.png"), TargetName: "x_1.png"},
		{SourcePath: filepath.Join(dir, "b.png"), TargetName: "x_2.png"},
		// Missing source forces a stage failure after two files are staged.
		{SourcePath: filepath.Join(dir, "missing.png"), TargetName: "x_3.png"},
	}

	_, err := Execute(plan, dir)
	if err == nil {
		t.Fatal("Execute() succeeded, want failure")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if len(execErr.Unrestored) != 0 {
		t.Errorf("Unrestored = %v, want empty", execErr.Unrestored)
	}

	// Both staged files must be back under their original names and no
	// staging temp or committed target may remain.
	for _, name := range listNames(t, dir) {
		if strings.HasPrefix(name, ".pngseq-stage-") {
			t.Errorf("staging temp %s left behind", name)
		}
		if strings.HasPrefix(name, "x_") {
			t.Errorf("target %s committed despite failure", name)
		}
	}
	if got := readFile(t, filepath.Join(dir, "a.png")); got != "a" {
		t.Errorf("a.png content = %q, want a", got)
	}
	if got := readFile(t, filepath.Join(dir, "b.png")); got != "b" {
		t.Errorf("b.png content = %q, want b", got)
	}
}

// TestExecErrorUnwrap verifies the original failure stays reachable
func TestExecErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &ExecError{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want it to mention the cause", err.Error())
	}
}

// TestExecErrorReportsUnrestored verifies unrestored files appear in the
// message rather than being dropped
func TestExecErrorReportsUnrestored(t *testing.T) {
	err := &ExecError{
		Err:        errors.New("commit failed"),
		Unrestored: []string{"/seq/.pngseq-stage-abc"},
	}
	if !strings.Contains(err.Error(), ".pngseq-stage-abc") {
		t.Errorf("Error() = %q, want it to list the unrestored file", err.Error())
	}
}
