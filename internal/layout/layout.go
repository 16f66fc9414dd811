// Package layout maps a resolved file date onto a relative destination
// folder under the target root.
package layout

import (
	"fmt"
	"path/filepath"
	"time"
)

// Scheme controls the shape of the dated folder tree.
type Scheme struct {
	Daily  bool // append a DD folder below the month
	NoYear bool // flatten YYYY/MM into a single YYYY-MM folder
}

// Rel returns the relative destination folder for t. Pure function of its
// inputs: identical dates under an identical scheme always map to the
// identical path string.
func (s Scheme) Rel(t time.Time) string {
	year, month, day := t.Date()

	var dir string
	if s.NoYear {
		dir = fmt.Sprintf("%04d-%02d", year, month)
	} else {
		dir = filepath.Join(fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	}
	if s.Daily {
		dir = filepath.Join(dir, fmt.Sprintf("%02d", day))
	}
	return dir
}

func (s Scheme) String() string {
	switch {
	case s.Daily && s.NoYear:
		return "YYYY-MM/DD"
	case s.Daily:
		return "YYYY/MM/DD"
	case s.NoYear:
		return "YYYY-MM"
	default:
		return "YYYY/MM"
	}
}
