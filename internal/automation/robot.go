package automation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/vcaesar/gcv"
)

// Robot is the robotgo-backed Automator used in production
type Robot struct{}

// NewRobot creates the real automator
func NewRobot() *Robot {
	return &Robot{}
}

// MoveCursor moves the pointer to (x, y). MoveSmooth animates the transition,
// approximating the requested duration with its default speed curve.
func (r *Robot) MoveCursor(x, y int, duration time.Duration) error {
	robotgo.MoveSmooth(x, y)
	return nil
}

// Click performs a left click at the current pointer position
func (r *Robot) Click() error {
	robotgo.Click("left", false)
	return nil
}

// RightClick performs a right click at the current pointer position
func (r *Robot) RightClick() error {
	robotgo.Click("right", false)
	return nil
}

// Hold presses and keeps the left button down
func (r *Robot) Hold() error {
	return robotgo.Toggle("left", "down")
}

// Release releases the held left button
func (r *Robot) Release() error {
	return robotgo.Toggle("left", "up")
}

// TypeText sends text character by character. The small inter-character
// interval keeps input methods from dropping keystrokes.
func (r *Robot) TypeText(text string, interval time.Duration) error {
	for _, ch := range text {
		robotgo.TypeStr(string(ch))
		if interval > 0 {
			robotgo.MilliSleep(int(interval.Milliseconds()))
		}
	}
	return nil
}

// PressKey taps a single named key
func (r *Robot) PressKey(name string) error {
	return safeKeyTap(name)
}

// SendHotkey sends the keys as one chord. The last key is the tap target,
// everything before it is treated as a modifier.
func (r *Robot) SendHotkey(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) == 1 {
		return safeKeyTap(keys[0])
	}

	mods := make([]interface{}, len(keys)-1)
	for i, mod := range keys[:len(keys)-1] {
		mods[i] = normalizeModifier(mod)
	}
	return safeKeyTap(keys[len(keys)-1], mods...)
}

// LocateOnScreen captures the screen and template-matches the image file.
// gcv panics on unreadable images, so failures are folded into errors here.
func (r *Robot) LocateOnScreen(path string, confidence float64) (pt Point, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pt, err = Point{}, &CapabilityError{Op: "image search", Err: fmt.Errorf("%v", rec)}
		}
	}()

	img := robotgo.CaptureImg()
	if img == nil {
		return Point{}, &CapabilityError{Op: "screen capture"}
	}

	results := gcv.FindAllImgFile(path, img)
	if len(results) == 0 {
		return Point{}, ErrTargetNotFound
	}

	best := results[0]
	if len(best.MaxVal) > 0 && float64(best.MaxVal[0]) < confidence {
		return Point{}, ErrTargetNotFound
	}
	return Point{X: best.Middle.X, Y: best.Middle.Y}, nil
}

// ReadClipboard returns the current clipboard text
func (r *Robot) ReadClipboard() (string, error) {
	return robotgo.ReadAll()
}

// safeKeyTap performs a key tap, converting robotgo panics on unknown key
// names into errors
func safeKeyTap(key string, mods ...interface{}) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &CapabilityError{Op: "key tap", Err: fmt.Errorf("%v", rec)}
		}
	}()
	return robotgo.KeyTap(key, mods...)
}

// normalizeModifier maps common modifier aliases to robotgo names
func normalizeModifier(mod string) string {
	switch strings.ToLower(mod) {
	case "command", "cmd", "super", "win":
		return "command"
	case "control", "ctrl":
		return "control"
	case "alt", "option":
		return "alt"
	case "shift":
		return "shift"
	default:
		return mod
	}
}
