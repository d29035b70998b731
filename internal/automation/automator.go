package automation

import "time"

// Point is a screen coordinate
type Point struct {
	X int
	Y int
}

// Automator abstracts the OS input-simulation and screen-search primitives
// the execution engine drives. The engine never talks to robotgo directly,
// which keeps it testable without a display.
type Automator interface {
	// MoveCursor moves the pointer to (x, y) with a short smooth transition
	MoveCursor(x, y int, duration time.Duration) error
	// Click performs a left click at the current pointer position
	Click() error
	// RightClick performs a right click at the current pointer position
	RightClick() error
	// Hold presses the left button and keeps it down
	Hold() error
	// Release releases the held left button
	Release() error
	// TypeText sends text one character at a time with the given interval
	TypeText(text string, interval time.Duration) error
	// PressKey taps a single named key
	PressKey(name string) error
	// SendHotkey sends the given keys as one chord
	SendHotkey(keys ...string) error
	// LocateOnScreen finds the image on screen and returns its center.
	// Misses return ErrTargetNotFound; a broken backend returns *CapabilityError.
	LocateOnScreen(path string, confidence float64) (Point, error)
	// ReadClipboard returns the current clipboard text
	ReadClipboard() (string, error)
}
