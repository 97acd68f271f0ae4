// Package progress implements the Progress Bus: a one-way, typed event
// stream carrying stage/status/error/completion events from the
// scan/hash/plan/execute pipeline to whichever observer is attached (a
// no-op sink, a progressbar-driven CLI meter, a TUI event loop, or a JSON
// serializer for a remote consumer).
package progress

import "time"

// EventKind is the tagged variant of a ProgressEvent.
type EventKind int

const (
	EventStatusUpdate EventKind = iota
	EventError
	EventCompleted
)

// Result summarizes a completed pipeline run.
type Result struct {
	DuplicateSets int
	TotalFiles    int
	TotalBytes    int64
	DuplicateBytes int64
	Elapsed       time.Duration
}

// Event is a single message on the Progress Bus. Only the fields relevant
// to Kind are populated.
type Event struct {
	Kind    EventKind
	Stage   string // e.g. "walk", "hash", "plan", "execute"
	Message string
	Err     error
	Result  Result
}

// StatusUpdate builds a StatusUpdate event.
func StatusUpdate(stage, message string) Event {
	return Event{Kind: EventStatusUpdate, Stage: stage, Message: message}
}

// ErrorEvent builds an Error event.
func ErrorEvent(stage string, err error) Event {
	return Event{Kind: EventError, Stage: stage, Err: err}
}

// CompletedEvent builds a Completed event.
func CompletedEvent(result Result) Event {
	return Event{Kind: EventCompleted, Result: result}
}
