package recorder

import "errors"

// ErrCaptureUnavailable — the global input hook cannot run on this system.
// Non-fatal: the application works without the recording feature.
var ErrCaptureUnavailable = errors.New("input capture backend unavailable")
