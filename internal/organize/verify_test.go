package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("identical"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("identical"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0o644))

	same, err := sameContent(a, b)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = sameContent(a, c)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestSameContentMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))

	_, err := sameContent(a, filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestVerifyContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	good := filepath.Join(dir, "good")
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(good, []byte("payload"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("corrupt"), 0o644))

	assert.NoError(t, verifyContent(src, good))

	err := verifyContent(src, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content mismatch")
}
