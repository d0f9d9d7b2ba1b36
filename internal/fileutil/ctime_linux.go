//go:build linux

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// creationTime approximates file creation time with the inode change
// time, the closest stat field Linux exposes. Falls back to the
// modification time when the raw stat data is unavailable.
func creationTime(fi os.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return fi.ModTime()
}
