package engine

import "errors"

var (
	// ErrAlreadyRunning — Start was called while a run is in progress.
	ErrAlreadyRunning = errors.New("a workflow run is already in progress")

	// ErrStopped — the run ended because the stop signal was asserted.
	ErrStopped = errors.New("run stopped")
)
