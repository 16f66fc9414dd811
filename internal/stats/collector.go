// Package stats aggregates run counters for the final summary.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks organize-run statistics using atomic counters.
type Collector struct {
	filesScanned atomic.Int64
	filesMoved   atomic.Int64
	filesCopied  atomic.Int64
	filesSkipped atomic.Int64
	filesFailed  atomic.Int64
	bytesPlaced  atomic.Int64
	dirsCreated  atomic.Int64
	startTime    time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFilesScanned(n int64) { c.filesScanned.Add(n) }
func (c *Collector) AddFilesMoved(n int64)   { c.filesMoved.Add(n) }
func (c *Collector) AddFilesCopied(n int64)  { c.filesCopied.Add(n) }
func (c *Collector) AddFilesSkipped(n int64) { c.filesSkipped.Add(n) }
func (c *Collector) AddFilesFailed(n int64)  { c.filesFailed.Add(n) }
func (c *Collector) AddBytesPlaced(n int64)  { c.bytesPlaced.Add(n) }
func (c *Collector) AddDirsCreated(n int64)  { c.dirsCreated.Add(n) }

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesScanned int64
	FilesMoved   int64
	FilesCopied  int64
	FilesSkipped int64
	FilesFailed  int64
	BytesPlaced  int64
	DirsCreated  int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesScanned: c.filesScanned.Load(),
		FilesMoved:   c.filesMoved.Load(),
		FilesCopied:  c.filesCopied.Load(),
		FilesSkipped: c.filesSkipped.Load(),
		FilesFailed:  c.filesFailed.Load(),
		BytesPlaced:  c.bytesPlaced.Load(),
		DirsCreated:  c.dirsCreated.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Placed returns the number of files actually transferred.
func (s Snapshot) Placed() int64 {
	return s.FilesMoved + s.FilesCopied
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"scanned=%d moved=%d copied=%d skipped=%d failed=%d bytes=%d dirs=%d",
		s.FilesScanned, s.FilesMoved, s.FilesCopied, s.FilesSkipped,
		s.FilesFailed, s.BytesPlaced, s.DirsCreated,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
