package btime

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	resolved, source := Resolve(path)

	assert.False(t, resolved.IsZero())
	assert.NotEqual(t, Now, source, "an existing file must resolve from birth time or mtime")
	// A freshly created file resolves to roughly the present, whichever tier fired.
	assert.WithinDuration(t, time.Now(), resolved, time.Minute)
}

func TestResolveFallsBackToModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	past := time.Date(2020, time.March, 14, 9, 26, 53, 0, time.Local)
	require.NoError(t, os.Chtimes(path, past, past))

	resolved, source := Resolve(path)
	if source == ModTime {
		assert.True(t, resolved.Equal(past), "mtime tier must report the file's mtime")
	} else {
		// Platform recorded a true birth time; it reflects actual creation.
		assert.Equal(t, Birth, source)
		assert.WithinDuration(t, time.Now(), resolved, time.Minute)
	}
}

func TestResolveMissingFileNeverStalls(t *testing.T) {
	resolved, source := Resolve(filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, Now, source)
	assert.WithinDuration(t, time.Now(), resolved, time.Minute)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "birth", Birth.String())
	assert.Equal(t, "mtime", ModTime.String())
	assert.Equal(t, "now", Now.String())
}
