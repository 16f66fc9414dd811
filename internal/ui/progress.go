package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/mbellhart/snapsort/internal/event"
	"github.com/mbellhart/snapsort/internal/stats"
)

// progressPresenter renders an indeterminate progress bar on the terminal.
// The total is unknown up front because enumeration is lazy.
type progressPresenter struct {
	w     io.Writer
	stats *stats.Collector
	bar   *progressbar.ProgressBar
}

func (p *progressPresenter) Run(events <-chan event.Event) error {
	p.bar = progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("organizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(p.w, "\n") //nolint:errcheck // cosmetic newline
		}),
	)

	for ev := range events {
		switch ev.Type {
		case event.FileMoved, event.FileCopied, event.FileSkipped, event.FileFailed:
			p.bar.Add(1) //nolint:errcheck // progress display is best-effort
		case event.RunComplete:
			p.bar.Finish() //nolint:errcheck // progress display is best-effort
		}
	}
	return nil
}

func (p *progressPresenter) Summary() string {
	return summaryLine(p.stats.Snapshot())
}
