// Package organize implements the placement pipeline: enumerate candidates
// under the source root, resolve a creation date for each, map the date to a
// dated folder under the target root and move or copy the file there without
// clobbering anything already in place.
package organize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mbellhart/snapsort/internal/btime"
	"github.com/mbellhart/snapsort/internal/event"
	"github.com/mbellhart/snapsort/internal/filter"
	"github.com/mbellhart/snapsort/internal/layout"
	"github.com/mbellhart/snapsort/internal/platform"
	"github.com/mbellhart/snapsort/internal/scan"
	"github.com/mbellhart/snapsort/internal/stats"
)

// Action selects between moving and copying candidates.
type Action int

const (
	Move Action = iota
	Copy
)

func (a Action) String() string {
	if a == Copy {
		return "copy"
	}
	return "move"
}

// Outcome is the terminal state of one candidate.
type Outcome int

const (
	Moved Outcome = iota + 1
	Copied
	Skipped
	Failed
)

var outcomeNames = [...]string{
	Moved:   "moved",
	Copied:  "copied",
	Skipped: "skipped",
	Failed:  "failed",
}

func (o Outcome) String() string {
	if o > 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Placement records what happened to a single candidate.
type Placement struct {
	Source  string
	Dest    string
	Action  Action
	Outcome Outcome
	Reason  string // populated for Skipped and Failed
}

// Config describes a full organize run.
type Config struct {
	Source    string
	Target    string
	Recursive bool
	Filter    *filter.Rules
	Scheme    layout.Scheme
	Action    Action
	DryRun    bool
	Verify    bool

	Events chan<- event.Event // optional; never closed by the engine
	Stats  *stats.Collector   // optional
	Logger *slog.Logger       // optional, defaults to slog.Default()
}

// Result is the outcome of an organize run.
type Result struct {
	Placements []Placement
	Stats      stats.Snapshot
	Err        error // non-nil only for a fatal abort; per-file failures live in Placements
}

type engine struct {
	cfg      Config
	logger   *slog.Logger
	stats    *stats.Collector
	madeDirs map[string]struct{}
}

// Run executes an organize run, blocking until the source is exhausted, the
// context is cancelled, or a fatal error makes the target unusable.
// Processing is strictly sequential: one candidate completes before the next
// begins, and transfers already committed survive cancellation.
func Run(ctx context.Context, cfg Config) Result {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}

	info, err := os.Stat(cfg.Source)
	if err != nil {
		return Result{Err: fmt.Errorf("source: %w", err)}
	}
	if !info.IsDir() {
		return Result{Err: fmt.Errorf("source %s is not a directory", cfg.Source)}
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
			return Result{Err: fmt.Errorf("create target: %w", err)}
		}
	}

	eng := &engine{
		cfg:      cfg,
		logger:   logger,
		stats:    collector,
		madeDirs: make(map[string]struct{}),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scanner := scan.New(cfg.Source, cfg.Recursive, cfg.Filter)
	cands, scanErrs := scanner.Scan(ctx)
	eng.emit(event.Event{Type: event.ScanStarted, Path: cfg.Source})

	var placements []Placement
	var fatal error

loop:
	for {
		select {
		case err, ok := <-scanErrs:
			if !ok {
				scanErrs = nil
				continue
			}
			logger.Warn("enumeration error", "error", err)
		case cand, ok := <-cands:
			if !ok {
				break loop
			}
			collector.AddFilesScanned(1)

			p := eng.place(cand)
			placements = append(placements, p)
			eng.record(p, cand.Info.Size())

			if fatal = eng.checkTargetRoot(p); fatal != nil {
				logger.Error("target root unusable, aborting", "error", fatal)
				cancel()
				break loop
			}
			if ctx.Err() != nil {
				break loop
			}
		}
	}

	// Drain remaining enumeration errors so the scanner goroutine can exit.
	if scanErrs != nil {
		for err := range scanErrs {
			logger.Warn("enumeration error", "error", err)
		}
	}

	snapshot := collector.Snapshot()
	eng.emit(event.Event{Type: event.RunComplete, Size: snapshot.BytesPlaced})

	if fatal == nil && ctx.Err() != nil {
		fatal = ctx.Err()
	}
	return Result{Placements: placements, Stats: snapshot, Err: fatal}
}

// place runs one candidate through the per-file state machine:
// date resolved, destination computed, then transferred, skipped or failed.
func (e *engine) place(cand scan.Candidate) Placement {
	p := Placement{Source: cand.Path, Action: e.cfg.Action}

	resolved, source := btime.Resolve(cand.Path)
	if source != btime.Birth {
		e.logger.Debug("creation time unavailable, falling back",
			"path", cand.Path, "fallback", source.String())
	}

	destDir := filepath.Join(e.cfg.Target, e.cfg.Scheme.Rel(resolved))
	p.Dest = filepath.Join(destDir, filepath.Base(cand.Path))

	if e.cfg.DryRun {
		return e.placeDry(p)
	}

	if err := e.ensureDir(destDir); err != nil {
		p.Outcome = Failed
		p.Reason = err.Error()
		return p
	}

	if done := e.checkCollision(&p, cand); done {
		return p
	}

	var err error
	if e.cfg.Action == Copy {
		err = e.copyFile(cand, p.Dest)
	} else {
		err = e.moveFile(cand, p.Dest)
	}
	if err != nil {
		p.Outcome = Failed
		p.Reason = err.Error()
		e.logger.Error("placement failed",
			"src", cand.Path, "dest", p.Dest, "error", err)
		return p
	}

	if e.cfg.Action == Copy {
		p.Outcome = Copied
	} else {
		p.Outcome = Moved
	}
	e.logger.Info(p.Outcome.String(), "src", cand.Path, "dest", p.Dest)
	return p
}

func (e *engine) placeDry(p Placement) Placement {
	if _, err := os.Lstat(p.Dest); err == nil {
		p.Outcome = Skipped
		p.Reason = "destination exists"
	} else if e.cfg.Action == Copy {
		p.Outcome = Copied
	} else {
		p.Outcome = Moved
	}
	e.logger.Info("dry run: would "+p.Action.String(),
		"src", p.Source, "dest", p.Dest, "outcome", p.Outcome.String())
	return p
}

// checkCollision applies the non-destructive collision policy: an existing
// destination is never overwritten. Returns true when the placement is
// terminal (skipped or failed).
func (e *engine) checkCollision(p *Placement, cand scan.Candidate) bool {
	_, err := os.Lstat(p.Dest)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err != nil {
		p.Outcome = Failed
		p.Reason = fmt.Sprintf("stat destination: %v", err)
		return true
	}

	p.Outcome = Skipped
	p.Reason = "destination exists"
	if same, cmpErr := sameContent(cand.Path, p.Dest); cmpErr == nil && !same {
		e.logger.Warn("destination exists with different content, not overwriting",
			"src", cand.Path, "dest", p.Dest)
	} else {
		e.logger.Warn("destination exists, skipping",
			"src", cand.Path, "dest", p.Dest)
	}
	return true
}

// ensureDir creates the dated destination folder once per run. Pre-existing
// directories are not an error.
func (e *engine) ensureDir(dir string) error {
	if _, ok := e.madeDirs[dir]; ok {
		return nil
	}

	_, statErr := os.Stat(dir)
	existed := statErr == nil
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	e.madeDirs[dir] = struct{}{}

	if !existed {
		e.stats.AddDirsCreated(1)
		e.emit(event.Event{Type: event.DirCreated, Path: dir})
		e.logger.Debug("created directory", "dir", dir)
	}
	return nil
}

func (e *engine) copyFile(cand scan.Candidate, dest string) error {
	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, cand.Info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	result, copyErr := platform.CopyFile(platform.CopyFileParams{
		DstFd:   dst,
		SrcPath: cand.Path,
		SrcSize: cand.Info.Size(),
	})
	closeErr := dst.Close()

	if copyErr != nil {
		os.Remove(dest) // no partial files left behind
		return fmt.Errorf("copy %s: %w", cand.Path, copyErr)
	}
	if closeErr != nil {
		os.Remove(dest)
		return fmt.Errorf("close %s: %w", dest, closeErr)
	}
	e.logger.Debug("transferred",
		"dest", dest, "bytes", result.BytesWritten, "method", result.Method.String())

	if e.cfg.Verify {
		if err := verifyContent(cand.Path, dest); err != nil {
			os.Remove(dest)
			return err
		}
	}
	return nil
}

func (e *engine) moveFile(cand scan.Candidate, dest string) error {
	err := os.Rename(cand.Path, dest)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("rename %s: %w", cand.Path, err)
	}

	// Target lives on another filesystem: copy, then remove the source only
	// once the copy is known good.
	if err := e.copyFile(cand, dest); err != nil {
		return err
	}
	if err := os.Remove(cand.Path); err != nil {
		return fmt.Errorf("remove source %s: %w", cand.Path, err)
	}
	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// checkTargetRoot distinguishes a per-file failure from losing the target
// root entirely (unmounted, deleted). The latter aborts the run.
func (e *engine) checkTargetRoot(p Placement) error {
	if p.Outcome != Failed || e.cfg.DryRun {
		return nil
	}
	if _, err := os.Stat(e.cfg.Target); err != nil {
		return fmt.Errorf("target root: %w", err)
	}
	return nil
}

func (e *engine) record(p Placement, size int64) {
	switch p.Outcome {
	case Moved:
		e.stats.AddFilesMoved(1)
		e.stats.AddBytesPlaced(size)
		e.emit(event.Event{Type: event.FileMoved, Path: p.Source, Dest: p.Dest, Size: size})
	case Copied:
		e.stats.AddFilesCopied(1)
		e.stats.AddBytesPlaced(size)
		e.emit(event.Event{Type: event.FileCopied, Path: p.Source, Dest: p.Dest, Size: size})
	case Skipped:
		e.stats.AddFilesSkipped(1)
		e.emit(event.Event{Type: event.FileSkipped, Path: p.Source, Dest: p.Dest, Size: size, Reason: p.Reason})
	case Failed:
		e.stats.AddFilesFailed(1)
		e.emit(event.Event{Type: event.FileFailed, Path: p.Source, Dest: p.Dest, Size: size, Error: errors.New(p.Reason)})
	}
}

func (e *engine) emit(ev event.Event) {
	if e.cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	e.cfg.Events <- ev
}
