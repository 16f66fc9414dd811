//go:build !linux && !darwin && !windows

package btime

import "time"

// birthTime reports no creation time on platforms without a known API for it.
func birthTime(_ string) (time.Time, bool) {
	return time.Time{}, false
}
