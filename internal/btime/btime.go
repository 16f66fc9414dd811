// Package btime resolves a file's creation time with a graceful fallback
// chain: platform-native birth time where the OS exposes one, then the
// modification time, then the current time.
package btime

import (
	"os"
	"time"
)

// Source identifies which fallback tier produced a resolved time.
type Source int

const (
	Birth   Source = iota // platform-native creation time
	ModTime               // last modification time
	Now                   // current processing time
)

func (s Source) String() string {
	switch s {
	case Birth:
		return "birth"
	case ModTime:
		return "mtime"
	case Now:
		return "now"
	default:
		return "unknown"
	}
}

// Resolve returns the best available creation time for path. It never fails
// for an existing, readable file: when the platform does not record a birth
// time it degrades to the modification time, and as a last resort to the
// current time so the pipeline cannot stall on an unresolvable file. The
// returned Source tells the caller which tier was used.
func Resolve(path string) (time.Time, Source) {
	if t, ok := birthTime(path); ok {
		return t, Birth
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime(), ModTime
	}
	return time.Now(), Now
}
