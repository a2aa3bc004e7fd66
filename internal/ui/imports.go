package ui

import "github.com/bamsammich/photocopy/internal/event"

// Event is the progress event consumed by presenters.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanComplete  = event.ScanComplete
	PassStarted   = event.PassStarted
	FileStarted   = event.FileStarted
	FileCopied    = event.FileCopied
	FileExisted   = event.FileExisted
	FileFailed    = event.FileFailed
	PassComplete  = event.PassComplete
	PassCancelled = event.PassCancelled
)
