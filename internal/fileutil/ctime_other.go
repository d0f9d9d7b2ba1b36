//go:build !linux && !darwin && !windows

package fileutil

import (
	"os"
	"time"
)

// creationTime falls back to the modification time on platforms without
// a portable creation-time stat field.
func creationTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
