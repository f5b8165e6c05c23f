// Package scheduler runs UI callbacks on a single thread of control and
// schedules one-shot and repeating timers onto it.
package scheduler

import "time"

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) Handle
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) Handle
	// Cancel stops a timer. Unknown or already fired handles are ignored.
	Cancel(h Handle)
}

// Executor runs fn on the UI thread and returns once it has completed.
type Executor interface {
	Do(fn func())
}
