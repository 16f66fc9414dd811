//go:build windows

package btime

import (
	"os"
	"syscall"
	"time"
)

// birthTime reads the NTFS creation time from the Win32 file attributes.
func birthTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, attr.CreationTime.Nanoseconds()), true
}
