//go:build windows

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the file's creation time as reported by the
// filesystem, falling back to the modification time when the raw
// attribute data is unavailable.
func creationTime(fi os.FileInfo) time.Time {
	if st, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, st.CreationTime.Nanoseconds())
	}
	return fi.ModTime()
}
