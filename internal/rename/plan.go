// Package rename implements the sequence rename engine: planning target
// names for an ordered batch of files, detecting collisions before any
// filesystem mutation, executing the renames with a two-phase staging
// protocol that can never clobber a pending source, and recording each
// completed batch to a CSV ledger that drives undo.
package rename

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyBasename indicates the basename parameter was empty after
// trimming whitespace. The caller must fix the input; no partial effect.
var ErrEmptyBasename = errors.New("rename: basename is required")

// Params holds the naming parameters for a rename batch.
type Params struct {
	// Basename is the required stem every target name is built around.
	Basename string

	// StartIndex is the sequence number assigned to the first file.
	StartIndex int

	// ZeroPadding is the width indices are zero-padded to.
	// 0 means auto: wide enough for the largest index in the batch.
	ZeroPadding int

	// Prefix is prepended to the basename.
	Prefix string

	// Suffix is appended after the index, before the extension.
	Suffix string
}

// PlanEntry pairs a source file path with the target filename it will be
// renamed to. TargetName is a bare filename, never a path; it is unique
// within a plan by construction but must still be checked against the
// filesystem with Detect before executing.
type PlanEntry struct {
	SourcePath string
	TargetName string
}

// Plan computes the target name for every source path in the given
// order. The i-th file gets index StartIndex+i and target name
// Prefix + Basename + "_" + index + Suffix + ".png".
//
// Plan performs no sorting: sources must already be in the order the
// caller wants the sequence numbered (see fileutil.ListPNGFiles).
// An empty source list yields an empty plan without error.
func Plan(sources []string, p Params) ([]PlanEntry, error) {
	basename := strings.TrimSpace(p.Basename)
	if basename == "" {
		return nil, ErrEmptyBasename
	}

	if len(sources) == 0 {
		return []PlanEntry{}, nil
	}

	// Auto-derive padding from the largest index this batch will use.
	// Recomputed on every call so the width tracks the batch size.
	padding := p.ZeroPadding
	if padding == 0 {
		maxIndex := p.StartIndex + len(sources) - 1
		padding = len(strconv.Itoa(maxIndex))
	}

	plan := make([]PlanEntry, 0, len(sources))
	for i, source := range sources {
		index := p.StartIndex + i
		target := fmt.Sprintf("%s%s_%0*d%s.png", p.Prefix, basename, padding, index, p.Suffix)
		plan = append(plan, PlanEntry{SourcePath: source, TargetName: target})
	}

	return plan, nil
}
