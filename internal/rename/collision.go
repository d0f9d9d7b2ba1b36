package rename

import (
	"fmt"
	"os"
	"path/filepath"
)

// CollisionKind classifies why a plan entry cannot be applied safely.
type CollisionKind string

const (
	// DuplicateTarget means two entries in the same plan share a target name.
	DuplicateTarget CollisionKind = "duplicate_target"

	// TargetExists means a target name is already taken on disk by a file
	// that is not the entry's own source.
	TargetExists CollisionKind = "target_exists"
)

// Collision describes a single conflict found by Detect. Collisions are
// transient: they exist to abort a batch and tell the user why, and are
// never persisted.
type Collision struct {
	Kind   CollisionKind
	Target string
}

// String renders the collision as a user-facing message.
func (c Collision) String() string {
	switch c.Kind {
	case DuplicateTarget:
		return fmt.Sprintf("duplicate target name: %s", c.Target)
	case TargetExists:
		return fmt.Sprintf("would overwrite existing file: %s", c.Target)
	default:
		return fmt.Sprintf("collision on %s", c.Target)
	}
}

// Detect inspects a plan against the current contents of dir and returns
// every conflict, in plan order. An empty result means the plan is safe
// to execute. Detect never mutates the filesystem.
//
// A plan entry whose target already exists on disk is exempt when the
// existing file is the entry's own source (the file is simply keeping
// its name).
func Detect(plan []PlanEntry, dir string) []Collision {
	collisions := []Collision{}
	seen := make(map[string]bool, len(plan))

	for _, entry := range plan {
		if seen[entry.TargetName] {
			collisions = append(collisions, Collision{Kind: DuplicateTarget, Target: entry.TargetName})
		}
		seen[entry.TargetName] = true

		targetPath := filepath.Join(dir, entry.TargetName)
		targetInfo, err := os.Stat(targetPath)
		if err != nil {
			// Target name is free.
			continue
		}
		if isSameFile(targetPath, targetInfo, entry.SourcePath) {
			continue
		}
		collisions = append(collisions, Collision{Kind: TargetExists, Target: entry.TargetName})
	}

	return collisions
}

// isSameFile reports whether the file at targetPath is the same file as
// sourcePath, preferring inode identity over path comparison so links
// and case-insensitive filesystems are handled correctly.
func isSameFile(targetPath string, targetInfo os.FileInfo, sourcePath string) bool {
	sourceInfo, err := os.Stat(sourcePath)
	if err == nil && os.SameFile(targetInfo, sourceInfo) {
		return true
	}
	return filepath.Clean(targetPath) == filepath.Clean(sourcePath)
}
