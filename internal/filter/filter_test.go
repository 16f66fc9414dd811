package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyRulesAdmitEverything(t *testing.T) {
	t.Parallel()

	r, err := New(Config{})
	require.NoError(t, err)

	assert.True(t, r.Admit("photo.jpg"))
	assert.True(t, r.Admit("sub/dir/anything.bin"))
}

func TestEndingsAllowList(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Endings: []string{".jpg", ".png"}})
	require.NoError(t, err)

	assert.True(t, r.Admit("photo.jpg"))
	assert.True(t, r.Admit("sub/shot.png"))
	assert.False(t, r.Admit("notes.txt"))
	assert.False(t, r.Admit("sub/clip.mp4"))
}

func TestEndingsCaseInsensitive(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Endings: []string{".JPG"}})
	require.NoError(t, err)

	assert.True(t, r.Admit("IMG_0001.jpg"))
	assert.True(t, r.Admit("IMG_0002.JPG"))
	assert.False(t, r.Admit("IMG_0003.png"))
}

func TestEndingsDotNormalization(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Endings: []string{"jpg", " png "}})
	require.NoError(t, err)

	assert.True(t, r.Admit("a.jpg"))
	assert.True(t, r.Admit("b.png"))
	assert.False(t, r.Admit("c.gif"))
}

func TestEndingsMatchSuffixNotJustExt(t *testing.T) {
	t.Parallel()

	// Suffix semantics: "_edit.jpg" narrows the allow-list beyond the bare
	// extension.
	r, err := New(Config{Endings: []string{"_edit.jpg"}})
	require.NoError(t, err)

	assert.True(t, r.Admit("holiday_edit.jpg"))
	assert.False(t, r.Admit("holiday.jpg"))
}

func TestExcludeGlob(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Exclude: "*.txt"})
	require.NoError(t, err)

	assert.False(t, r.Admit("readme.txt"))
	assert.False(t, r.Admit("sub/notes.txt"))
	assert.True(t, r.Admit("photo.jpg"))
}

func TestExcludeComposesWithEndings(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Endings: []string{".jpg"}, Exclude: "IMG_*"})
	require.NoError(t, err)

	assert.True(t, r.Admit("holiday.jpg"))
	assert.False(t, r.Admit("IMG_0001.jpg")) // excluded by pattern
	assert.False(t, r.Admit("holiday.png"))  // rejected by allow-list
}

func TestExcludeModeChangesInterpretation(t *testing.T) {
	t.Parallel()

	// "a.b" as a glob: the dot is literal.
	glob, err := New(Config{Exclude: "a.b"})
	require.NoError(t, err)
	assert.False(t, glob.Admit("a.b"))
	assert.True(t, glob.Admit("axb"))

	// Same literal pattern as a regex: the dot matches any character.
	re, err := New(Config{Exclude: "a.b", ExcludeIsRegex: true})
	require.NoError(t, err)
	assert.False(t, re.Admit("a.b"))
	assert.False(t, re.Admit("axb"))
}

func TestInvalidRegexIsConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Exclude: "[unclosed", ExcludeIsRegex: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude regex")
}

func TestInvalidGlobIsConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Exclude: "[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude glob")
}
