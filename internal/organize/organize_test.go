package organize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellhart/snapsort/internal/btime"
	"github.com/mbellhart/snapsort/internal/filter"
	"github.com/mbellhart/snapsort/internal/layout"
	"github.com/mbellhart/snapsort/internal/organize"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustRules(t *testing.T, cfg filter.Config) *filter.Rules {
	t.Helper()
	r, err := filter.New(cfg)
	require.NoError(t, err)
	return r
}

// expectedDest mirrors the pipeline's destination computation for a file
// that already exists, so tests do not depend on the platform's creation
// time support.
func expectedDest(t *testing.T, target, srcPath string, scheme layout.Scheme) string {
	t.Helper()
	resolved, _ := btime.Resolve(srcPath)
	return filepath.Join(target, scheme.Rel(resolved), filepath.Base(srcPath))
}

func runWith(t *testing.T, cfg organize.Config) organize.Result {
	t.Helper()
	if cfg.Filter == nil {
		cfg.Filter = mustRules(t, filter.Config{})
	}
	return organize.Run(context.Background(), cfg)
}

func TestCopyPlacesFileInDatedFolder(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	src := writeFile(t, source, "a.jpg", "photo bytes")
	want := expectedDest(t, target, src, layout.Scheme{})

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Copy,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, organize.Copied, result.Placements[0].Outcome)
	assert.Equal(t, want, result.Placements[0].Dest)

	// Copy: both source and destination exist with identical content.
	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "photo bytes", string(got))
	_, err = os.Stat(src)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), result.Stats.FilesCopied)
	assert.Equal(t, int64(0), result.Stats.FilesMoved)
}

func TestMoveRemovesSource(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	src := writeFile(t, source, "a.jpg", "move me")
	want := expectedDest(t, target, src, layout.Scheme{})

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Move,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, organize.Moved, result.Placements[0].Outcome)

	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "move me", string(got))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source must be gone after a move")
}

func TestCopyIsIdempotent(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	writeFile(t, source, "a.jpg", "same bytes")
	writeFile(t, source, "b.jpg", "other bytes")

	cfg := organize.Config{Source: source, Target: target, Action: organize.Copy}

	first := runWith(t, cfg)
	require.NoError(t, first.Err)
	assert.Equal(t, int64(2), first.Stats.FilesCopied)

	second := runWith(t, cfg)
	require.NoError(t, second.Err)
	assert.Equal(t, int64(0), second.Stats.FilesCopied)
	assert.Equal(t, int64(2), second.Stats.FilesSkipped)
	for _, p := range second.Placements {
		assert.Equal(t, organize.Skipped, p.Outcome)
		assert.Equal(t, "destination exists", p.Reason)
	}
}

func TestExcludedFileStaysInSource(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	writeFile(t, source, "a.jpg", "keep")
	txt := writeFile(t, source, "b.txt", "excluded")

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Move,
		Filter: mustRules(t, filter.Config{Exclude: "*.txt"}),
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, "a.jpg", filepath.Base(result.Placements[0].Source))

	// The excluded file is untouched in the source tree.
	got, err := os.ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "excluded", string(got))
}

func TestDailyNoYearScheme(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	scheme := layout.Scheme{Daily: true, NoYear: true}
	src := writeFile(t, source, "a.jpg", "dated")
	want := expectedDest(t, target, src, scheme)

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Copy,
		Scheme: scheme,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, want, result.Placements[0].Dest)
	assert.FileExists(t, want)
}

func TestCollisionSkipsWithoutOverwriting(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	src := writeFile(t, source, "a.jpg", "new content")

	// Pre-existing destination with different content.
	dest := expectedDest(t, target, src, layout.Scheme{})
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, os.WriteFile(dest, []byte("original content"), 0o644))

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Move,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, organize.Skipped, result.Placements[0].Outcome)
	assert.Equal(t, "destination exists", result.Placements[0].Reason)

	// Destination unchanged, source still present.
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original content", string(got))
	assert.FileExists(t, src)
}

func TestRecursiveRun(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	writeFile(t, source, "top.jpg", "1")
	writeFile(t, source, filepath.Join("sub", "nested.jpg"), "2")
	writeFile(t, source, filepath.Join("sub", "deep", "down.jpg"), "3")

	flat := runWith(t, organize.Config{Source: source, Target: target, Action: organize.Copy})
	require.NoError(t, flat.Err)
	assert.Len(t, flat.Placements, 1, "flat run sees direct children only")

	target2 := t.TempDir()
	recursive := runWith(t, organize.Config{
		Source:    source,
		Target:    target2,
		Recursive: true,
		Action:    organize.Copy,
	})
	require.NoError(t, recursive.Err)
	assert.Len(t, recursive.Placements, 3)
}

func TestDryRunTouchesNothing(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	src := writeFile(t, source, "a.jpg", "intact")

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Move,
		DryRun: true,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, organize.Moved, result.Placements[0].Outcome)

	assert.FileExists(t, src)
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not create anything under target")
}

func TestVerifiedCopy(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	src := writeFile(t, source, "a.jpg", "verified payload")
	want := expectedDest(t, target, src, layout.Scheme{})

	result := runWith(t, organize.Config{
		Source: source,
		Target: target,
		Action: organize.Copy,
		Verify: true,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, organize.Copied, result.Placements[0].Outcome)
	assert.FileExists(t, want)
}

func TestMissingSourceIsAnError(t *testing.T) {
	t.Parallel()

	result := runWith(t, organize.Config{
		Source: filepath.Join(t.TempDir(), "nope"),
		Target: t.TempDir(),
	})
	require.Error(t, result.Err)
	assert.Empty(t, result.Placements)
}

func TestTargetCreatedIfAbsent(t *testing.T) {
	t.Parallel()

	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "brand", "new")
	writeFile(t, source, "a.jpg", "x")

	result := runWith(t, organize.Config{Source: source, Target: target, Action: organize.Copy})
	require.NoError(t, result.Err)
	assert.DirExists(t, target)
}

func TestDirCreatedOncePerFolder(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	writeFile(t, source, "a.jpg", "1")
	writeFile(t, source, "b.jpg", "2")

	result := runWith(t, organize.Config{Source: source, Target: target, Action: organize.Copy})
	require.NoError(t, result.Err)
	// Both files share one dated folder; it is only counted once.
	assert.Equal(t, int64(1), result.Stats.DirsCreated)
}

// Candidate types stay consistent: every placement's source lives under the
// scan root and keeps its base name at the destination.
func TestPlacementPreservesBaseName(t *testing.T) {
	t.Parallel()

	source, target := t.TempDir(), t.TempDir()
	writeFile(t, source, "IMG_4321.jpeg", "x")

	result := runWith(t, organize.Config{Source: source, Target: target, Action: organize.Copy})
	require.NoError(t, result.Err)
	require.Len(t, result.Placements, 1)
	assert.Equal(t, "IMG_4321.jpeg", filepath.Base(result.Placements[0].Dest))
}
