package recorder

import "time"

// EventKind classifies a captured input event
type EventKind int

const (
	// KindChar is a printable single-character key press
	KindChar EventKind = iota
	// KindNamedKey is a non-printable key press (enter, tab, f5, ...)
	KindNamedKey
	// KindMouse is a mouse button transition
	KindMouse
)

// RawEvent is one captured input event, timestamped at capture time
type RawEvent struct {
	Kind    EventKind
	Char    rune   // KindChar
	Key     string // KindNamedKey, lower-case key name
	Button  string // KindMouse: left, right, center
	X       int
	Y       int
	Pressed bool // KindMouse: true on button down
	Time    time.Time
}

// Source supplies a live stream of raw input events.
// Events returns ErrCaptureUnavailable when the capture backend is missing;
// recording is an optional feature and callers tolerate that.
type Source interface {
	Events() (<-chan RawEvent, error)
	Close()
}
