package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanComplete Type = iota + 1
	PassStarted
	FileStarted
	FileCopied
	FileExisted
	FileFailed
	PassComplete
	PassCancelled
)

var typeNames = [...]string{
	ScanComplete:  "ScanComplete",
	PassStarted:   "PassStarted",
	FileStarted:   "FileStarted",
	FileCopied:    "FileCopied",
	FileExisted:   "FileExisted",
	FileFailed:    "FileFailed",
	PassComplete:  "PassComplete",
	PassCancelled: "PassCancelled",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the copy driver.
type Event struct {
	Type      Type
	Timestamp time.Time
	Src       string // source path relative to the source root
	Dst       string // destination path relative to the destination root
	Size      int64  // file size
	Total     int64  // files in the pass (ScanComplete, PassStarted, PassComplete)
	Pass      int    // 1 for the first pass, incremented by each retry
	Error     error
}

// IsFileOutcome reports whether the event closes out a single file.
func (e Event) IsFileOutcome() bool {
	switch e.Type {
	case FileCopied, FileExisted, FileFailed:
		return true
	}
	return false
}
