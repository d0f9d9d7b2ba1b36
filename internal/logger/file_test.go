package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// TestFileLoggerCreatesRunLog verifies the run log and latest.log link
func TestFileLoggerCreatesRunLog(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires extra privileges on windows")
	}

	logDir := filepath.Join(t.TempDir(), "logs")
	log, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer log.Close()

	log.LogInfo("renaming 5 files")

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}

	var runName string
	var sawLatest bool
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Name(), "run-") && strings.HasSuffix(e.Name(), ".log"):
			runName = e.Name()
		case e.Name() == "latest.log":
			sawLatest = true
		}
	}
	if runName == "" {
		t.Fatal("no run-*.log file created")
	}
	if !sawLatest {
		t.Fatal("latest.log symlink not created")
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("failed to read symlink: %v", err)
	}
	if target != runName {
		t.Errorf("latest.log -> %q, want %q", target, runName)
	}

	data, err := os.ReadFile(filepath.Join(logDir, runName))
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "=== pngseq Run Log ===") {
		t.Errorf("run log missing header: %q", content)
	}
	if !strings.Contains(content, "[INFO] renaming 5 files") {
		t.Errorf("run log missing message: %q", content)
	}
}

// TestFileLoggerLevelFiltering verifies the file logger respects levels
func TestFileLoggerLevelFiltering(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires extra privileges on windows")
	}

	logDir := filepath.Join(t.TempDir(), "logs")
	log, err := NewFileLogger(logDir, "error")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer log.Close()

	log.LogDebug("dropped")
	log.LogError("kept")

	data, err := os.ReadFile(log.runFile)
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "dropped") {
		t.Errorf("run log contains filtered message: %q", content)
	}
	if !strings.Contains(content, "kept") {
		t.Errorf("run log missing error message: %q", content)
	}
}

// TestFileLoggerBatchSummary verifies the summary block is written
func TestFileLoggerBatchSummary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires extra privileges on windows")
	}

	logDir := filepath.Join(t.TempDir(), "logs")
	log, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer log.Close()

	log.LogBatchSummary(7, 1, 2*time.Second)

	data, err := os.ReadFile(log.runFile)
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "=== BATCH SUMMARY ===") {
		t.Errorf("run log missing summary header: %q", content)
	}
	if !strings.Contains(content, "Renamed:       7") {
		t.Errorf("run log missing renamed count: %q", content)
	}
	if !strings.Contains(content, "Already named: 1") {
		t.Errorf("run log missing skipped count: %q", content)
	}
}

// TestFileLoggerClose verifies Close is idempotent and stops writing
func TestFileLoggerClose(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires extra privileges on windows")
	}

	logDir := filepath.Join(t.TempDir(), "logs")
	log, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Writes after close must be silently dropped.
	log.LogInfo("after close")
}
