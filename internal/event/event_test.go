package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ScanStarted", ScanStarted.String())
	assert.Equal(t, "FileMoved", FileMoved.String())
	assert.Equal(t, "FileCopied", FileCopied.String())
	assert.Equal(t, "FileSkipped", FileSkipped.String())
	assert.Equal(t, "FileFailed", FileFailed.String())
	assert.Equal(t, "DirCreated", DirCreated.String())
	assert.Equal(t, "RunComplete", RunComplete.String())
	assert.Equal(t, "Unknown", Type(0).String())
	assert.Equal(t, "Unknown", Type(99).String())
}
