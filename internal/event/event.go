// Package event defines the progress events the organize engine emits.
package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	FileMoved
	FileCopied
	FileSkipped
	FileFailed
	DirCreated
	RunComplete
)

var typeNames = [...]string{
	ScanStarted: "ScanStarted",
	FileMoved:   "FileMoved",
	FileCopied:  "FileCopied",
	FileSkipped: "FileSkipped",
	FileFailed:  "FileFailed",
	DirCreated:  "DirCreated",
	RunComplete: "RunComplete",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // source path (or directory for DirCreated)
	Dest      string // destination path, when one was computed
	Size      int64  // file size in bytes
	Reason    string // skip reason, when applicable
	Error     error  // failure cause, when applicable
}
