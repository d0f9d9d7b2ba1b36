package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/gouravbhagat/pngseq/internal/rename"
)

// useColor reports whether w is a terminal that should receive ANSI
// colors. File and buffer writers always get plain text.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

// PreviewTable writes the old-name/new-name listing for a planned batch.
// Current names render red, new names green, so the direction of the
// change is obvious at a glance.
func PreviewTable(w io.Writer, plan []rename.PlanEntry) {
	colored := useColor(w)

	// Column width follows the longest current name.
	width := len("Current Name")
	for _, entry := range plan {
		if n := len(filepath.Base(entry.SourcePath)); n > width {
			width = n
		}
	}

	fmt.Fprintf(w, "%-*s  %s\n", width, "Current Name", "New Name")
	for _, entry := range plan {
		oldName := filepath.Base(entry.SourcePath)
		if colored {
			padding := width - len(oldName)
			fmt.Fprintf(w, "%s%*s  %s\n",
				color.New(color.FgRed).Sprint(oldName),
				padding, "",
				color.New(color.FgGreen).Sprint(entry.TargetName))
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, oldName, entry.TargetName)
	}
}

// CollisionReport writes every collision found by the detector, one per
// line, followed by a count. The caller decides whether to abort.
func CollisionReport(w io.Writer, collisions []rename.Collision) {
	colored := useColor(w)

	fmt.Fprintf(w, "Naming collisions detected:\n")
	for _, c := range collisions {
		if colored {
			fmt.Fprintf(w, "  %s %s\n", color.New(color.FgRed).Sprint("✗"), c.String())
		} else {
			fmt.Fprintf(w, "  ✗ %s\n", c.String())
		}
	}
	fmt.Fprintf(w, "\nFound %d collision(s); no files were changed.\n", len(collisions))
}
