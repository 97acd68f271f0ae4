// Package errs defines the typed error kinds, so collaborators
// can branch on recovery policy without string-matching error messages.
package errs

import "fmt"

// Kind is one of a fixed set of error kinds, each with a fixed recovery
// policy: local recovery by default, fatal only when the pipeline's own
// invariant space is broken.
type Kind int

const (
	// InvalidConfig: bad glob, unknown algorithm, non-existent root,
	// target-not-directory. Fatal, aborts before pipeline start.
	InvalidConfig Kind = iota
	// WalkEntryError: permission denied, metadata unreadable for a single
	// entry. Warn and drop the entry.
	WalkEntryError
	// HashError: unreadable file. Warn; the file is omitted from its size
	// group.
	HashError
	// CacheLoadError: warn; proceed with an empty cache.
	CacheLoadError
	// CacheFlushError: warn; the run result is still returned.
	CacheFlushError
	// PlanError: cardinality violation. Propagates to the planner's caller.
	PlanError
	// ActionError: rename/unlink/copy failed. Captured per job; batch
	// continues.
	ActionError
	// PipelineError: thread-pool build failure, result channel broken
	// mid-phase. Fatal; partial results are not returned.
	PipelineError
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case WalkEntryError:
		return "WalkEntryError"
	case HashError:
		return "HashError"
	case CacheLoadError:
		return "CacheLoadError"
	case CacheFlushError:
		return "CacheFlushError"
	case PlanError:
		return "PlanError"
	case ActionError:
		return "ActionError"
	case PipelineError:
		return "PipelineError"
	default:
		return "Unknown"
	}
}

// Fatal reports whether errors of this kind abort the run rather than
// being recovered locally.
func (k Kind) Fatal() bool {
	switch k {
	case InvalidConfig, PipelineError:
		return true
	default:
		return false
	}
}

// Error wraps an underlying error with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf builds an *Error of the given kind from a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
