package core

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
	ErrUnknownTable    = errors.New("unknown response table")
	ErrEmptyKeyword    = errors.New("keyword cannot be empty")
)

// ErrIncomplete means a page operation stopped before producing a view,
// either because it panicked or because the UI loop shut down.
var ErrIncomplete = errors.New("page operation did not complete")
