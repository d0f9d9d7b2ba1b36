package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SortMode selects the ordering applied to a directory listing.
// All modes sort ascending.
type SortMode string

const (
	// SortByName orders files by natural filename comparison.
	SortByName SortMode = "name"
	// SortByModified orders files by modification time.
	SortByModified SortMode = "modified"
	// SortByCreated orders files by creation time (platform permitting,
	// see creationTime).
	SortByCreated SortMode = "created"
)

// ParseSortMode validates a user-supplied sort mode string.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName, nil
	case SortByModified:
		return SortByModified, nil
	case SortByCreated:
		return SortByCreated, nil
	default:
		return "", fmt.Errorf("invalid sort mode %q, must be one of: name, modified, created", s)
	}
}

// SourceFile is one PNG file eligible for renaming, together with the
// metadata the sort modes key on. The engine only reads this metadata;
// the file itself stays owned by the filesystem.
type SourceFile struct {
	Path    string
	Name    string
	ModTime time.Time
	Created time.Time
}

// ListPNGFiles returns the regular files directly inside dir whose
// extension is .png (case-insensitive), sorted ascending by mode.
// Subdirectories are not traversed.
func ListPNGFiles(dir string, mode SortMode) ([]SourceFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]SourceFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, SourceFile{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			ModTime: fi.ModTime(),
			Created: creationTime(fi),
		})
	}

	switch mode {
	case SortByModified:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].ModTime.Before(files[j].ModTime)
		})
	case SortByCreated:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Created.Before(files[j].Created)
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return NaturalLess(files[i].Name, files[j].Name)
		})
	}

	return files, nil
}

// Paths extracts the paths of files in listing order, ready to hand to
// the rename planner.
func Paths(files []SourceFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
