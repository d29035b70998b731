package recorder

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode"

	hook "github.com/robotn/gohook"
)

// HookSource captures global input events through gohook
type HookSource struct {
	done    chan struct{}
	closeMu sync.Once
}

// NewHookSource creates an idle hook source; the hook starts on Events
func NewHookSource() *HookSource {
	return &HookSource{done: make(chan struct{})}
}

// Events starts the global hook and returns the translated event stream
func (s *HookSource) Events() (<-chan RawEvent, error) {
	if err := captureSupported(); err != nil {
		return nil, err
	}

	evChan := hook.Start()
	out := make(chan RawEvent, 64)

	go func() {
		defer close(out)
		for {
			select {
			case ev, ok := <-evChan:
				if !ok {
					return
				}
				raw, ok := translate(ev)
				if !ok {
					continue
				}
				select {
				case out <- raw:
				case <-s.done:
					return
				}
			case <-s.done:
				return
			}
		}
	}()

	return out, nil
}

// Close stops the hook; safe to call more than once
func (s *HookSource) Close() {
	s.closeMu.Do(func() {
		close(s.done)
		hook.End()
	})
}

// captureSupported checks whether the global hook can run at all.
// gohook needs an X display on Linux; Wayland-only sessions have none.
func captureSupported() error {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" {
		return fmt.Errorf("%w: no X display", ErrCaptureUnavailable)
	}
	return nil
}

// translate maps a gohook event onto a RawEvent
func translate(ev hook.Event) (RawEvent, bool) {
	ts := ev.When
	if ts.IsZero() {
		ts = time.Now()
	}

	switch ev.Kind {
	case hook.KeyDown:
		if unicode.IsPrint(ev.Keychar) && ev.Keychar != 0 {
			return RawEvent{Kind: KindChar, Char: ev.Keychar, Time: ts}, true
		}
		name := strings.ToLower(hook.RawcodetoKeychar(ev.Rawcode))
		if name == "" {
			return RawEvent{}, false
		}
		return RawEvent{Kind: KindNamedKey, Key: name, Time: ts}, true

	case hook.MouseDown, hook.MouseUp:
		return RawEvent{
			Kind:    KindMouse,
			Button:  buttonName(ev.Button),
			X:       int(ev.X),
			Y:       int(ev.Y),
			Pressed: ev.Kind == hook.MouseDown,
			Time:    ts,
		}, true
	}
	return RawEvent{}, false
}

func buttonName(b uint16) string {
	switch b {
	case 2:
		return "right"
	case 3:
		return "center"
	default:
		return "left"
	}
}
