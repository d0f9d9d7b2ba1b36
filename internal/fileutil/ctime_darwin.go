//go:build darwin

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the file's birth time as reported by the kernel,
// falling back to the modification time when the raw stat data is
// unavailable.
func creationTime(fi os.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Birthtimespec.Sec), int64(st.Birthtimespec.Nsec))
	}
	return fi.ModTime()
}
