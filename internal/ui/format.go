package ui

import (
	"fmt"
	"time"

	"github.com/mbellhart/snapsort/internal/stats"
)

// summaryLine renders the end-of-run summary from a stats snapshot.
func summaryLine(s stats.Snapshot) string {
	line := fmt.Sprintf("%d placed (%d moved, %d copied), %d skipped, %d failed, %s in %s",
		s.Placed(), s.FilesMoved, s.FilesCopied, s.FilesSkipped, s.FilesFailed,
		stats.FormatBytes(s.BytesPlaced), s.Elapsed.Round(time.Millisecond))
	if s.DirsCreated > 0 {
		line += fmt.Sprintf(", %d new folders", s.DirsCreated)
	}
	return line
}
