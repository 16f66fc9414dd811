package ui

import (
	"github.com/mbellhart/snapsort/internal/event"
	"github.com/mbellhart/snapsort/internal/stats"
)

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for range events {
		// Counters live on the collector; presenters only read them.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
