// Package scan enumerates candidate files beneath a source root, lazily and
// already filtered, so a large tree never has to be materialized up front.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mbellhart/snapsort/internal/filter"
)

// Candidate is a file discovered beneath the source root, eligible for
// placement. Immutable once yielded.
type Candidate struct {
	Path    string // source-root-joined path
	RelPath string // path relative to the scan root
	Info    fs.FileInfo
}

// Scanner walks a source tree and emits filtered candidates on demand.
type Scanner struct {
	root      string
	recursive bool
	rules     *filter.Rules

	cands chan Candidate
	errs  chan error
}

// New creates a scanner rooted at root. rules must be non-nil; pass the
// result of filter.New with a zero Config to admit everything.
func New(root string, recursive bool, rules *filter.Rules) *Scanner {
	return &Scanner{
		root:      root,
		recursive: recursive,
		rules:     rules,
		cands:     make(chan Candidate, 64),
		errs:      make(chan error, 8),
	}
}

// Scan starts the walk and returns channels for candidates and errors. Both
// close when the walk finishes or ctx is cancelled. The sequence reflects a
// single filesystem snapshot taken incrementally; it is not restartable, and
// files created or removed mid-walk may or may not be seen.
func (s *Scanner) Scan(ctx context.Context) (<-chan Candidate, <-chan error) {
	go func() {
		defer close(s.cands)
		defer close(s.errs)
		if s.recursive {
			s.walk(ctx)
		} else {
			s.listDir(ctx)
		}
	}()

	return s.cands, s.errs
}

func (s *Scanner) listDir(ctx context.Context) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.sendErr(fmt.Errorf("readdir %s: %w", s.root, err))
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		s.consider(ctx, filepath.Join(s.root, entry.Name()), entry.Name())
	}
}

func (s *Scanner) walk(ctx context.Context) {
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			// Unreadable subtree: report and keep walking.
			s.sendErr(err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			s.sendErr(fmt.Errorf("rel path for %s: %w", path, relErr))
			return nil
		}
		s.consider(ctx, path, rel)
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		s.sendErr(err)
	}
}

// consider applies the filter rules and yields the file if it passes.
// Stat follows symlinks, so a link pointing at a regular file counts.
func (s *Scanner) consider(ctx context.Context, path, rel string) {
	if !s.rules.Admit(rel) {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		s.sendErr(fmt.Errorf("stat %s: %w", path, err))
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	select {
	case s.cands <- Candidate{Path: path, RelPath: rel, Info: info}:
	case <-ctx.Done():
	}
}

func (s *Scanner) sendErr(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
