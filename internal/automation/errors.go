package automation

import "errors"

// ErrTargetNotFound — the image lookup found no match on screen.
// The execution engine treats this as fatal to the current run.
var ErrTargetNotFound = errors.New("target image not found on screen")

// CapabilityError reports a broken or missing automation backend,
// e.g. screen capture returning nothing under a restricted session.
type CapabilityError struct {
	Op  string // operation that failed
	Err error
}

// Error implements the error interface
func (e *CapabilityError) Error() string {
	if e.Err != nil {
		return "automation backend failed during " + e.Op + ": " + e.Err.Error()
	}
	return "automation backend failed during " + e.Op
}

// Unwrap returns the underlying error
func (e *CapabilityError) Unwrap() error {
	return e.Err
}
