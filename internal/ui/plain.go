package ui

import (
	"fmt"
	"io"

	"github.com/mbellhart/snapsort/internal/event"
	"github.com/mbellhart/snapsort/internal/stats"
)

// plainPresenter outputs one line per processed file. Used when stdout is
// not a terminal, or when verbose/no-progress output is requested.
type plainPresenter struct {
	w     io.Writer
	stats *stats.Collector
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.FileMoved:
		fmt.Fprintf(p.w, "moved   %s -> %s  %s\n", ev.Path, ev.Dest, stats.FormatBytes(ev.Size))
	case event.FileCopied:
		fmt.Fprintf(p.w, "copied  %s -> %s  %s\n", ev.Path, ev.Dest, stats.FormatBytes(ev.Size))
	case event.FileSkipped:
		fmt.Fprintf(p.w, "skipped %s (%s)\n", ev.Path, ev.Reason)
	case event.FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed  %s: %s\n", ev.Path, errMsg)
	}
}

func (p *plainPresenter) Summary() string {
	return summaryLine(p.stats.Snapshot())
}
