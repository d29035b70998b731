package recorder

import (
	"errors"
	"testing"
	"time"

	"github.com/vector233/AsgFlow/internal/workflow"
)

type fakeSource struct {
	events []RawEvent
	err    error
	closed bool
}

func (f *fakeSource) Events() (<-chan RawEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan RawEvent, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (f *fakeSource) Close() {
	f.closed = true
}

func TestRecordStopsOnEscape(t *testing.T) {
	src := &fakeSource{events: []RawEvent{
		{Kind: KindChar, Char: 'a', Time: at(0)},
		{Kind: KindChar, Char: 'b', Time: at(40 * time.Millisecond)},
		{Kind: KindNamedKey, Key: "esc", Time: at(80 * time.Millisecond)},
		{Kind: KindChar, Char: 'c', Time: at(120 * time.Millisecond)},
	}}

	steps, err := New(src, Options{}).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !src.closed {
		t.Error("source should be closed after recording")
	}

	if len(steps) != 1 || steps[0].Value != "ab" {
		t.Errorf("nothing after the stop key may be recorded, got %+v", steps)
	}
}

func TestRecordRightHoldTerminates(t *testing.T) {
	src := &fakeSource{events: []RawEvent{
		{Kind: KindChar, Char: 'a', Time: at(0)},
		{Kind: KindMouse, Button: "right", Pressed: true, X: 10, Y: 10, Time: at(time.Second)},
		{Kind: KindMouse, Button: "right", Pressed: false, X: 10, Y: 10, Time: at(3500 * time.Millisecond)},
		{Kind: KindChar, Char: 'z', Time: at(4 * time.Second)},
	}}

	steps, err := New(src, Options{}).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// The terminal hold itself is discarded
	want := []workflow.Step{
		{Type: workflow.TypeKeyboard, Action: workflow.KeyTypeText, Value: "a", Delay: 0},
	}
	if len(steps) != 1 || steps[0].Value != want[0].Value {
		t.Errorf("expected only the leading text, got %+v", steps)
	}
}

func TestRecordShortRightPressIsAClick(t *testing.T) {
	src := &fakeSource{events: []RawEvent{
		{Kind: KindMouse, Button: "right", Pressed: true, X: 7, Y: 8, Time: at(0)},
		{Kind: KindMouse, Button: "right", Pressed: false, X: 7, Y: 8, Time: at(300 * time.Millisecond)},
		{Kind: KindNamedKey, Key: "esc", Time: at(time.Second)},
	}}

	steps, err := New(src, Options{}).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(steps) != 1 || steps[0].Type != workflow.TypeMouse || steps[0].X != 7 || steps[0].Y != 8 {
		t.Errorf("short right press should record a click at the press position, got %+v", steps)
	}
}

func TestRecordCustomHoldThreshold(t *testing.T) {
	src := &fakeSource{events: []RawEvent{
		{Kind: KindMouse, Button: "right", Pressed: true, Time: at(0)},
		{Kind: KindMouse, Button: "right", Pressed: false, Time: at(600 * time.Millisecond)},
		{Kind: KindChar, Char: 'q', Time: at(time.Second)},
	}}

	// 0.5s threshold: the 0.6s hold terminates the capture
	steps, err := New(src, Options{StopHoldSeconds: 0.5}).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("expected empty recording, got %+v", steps)
	}
}

func TestRecordMouseReleasesIgnored(t *testing.T) {
	src := &fakeSource{events: []RawEvent{
		{Kind: KindMouse, Button: "left", Pressed: true, X: 1, Y: 2, Time: at(0)},
		{Kind: KindMouse, Button: "left", Pressed: false, X: 1, Y: 2, Time: at(100 * time.Millisecond)},
		{Kind: KindNamedKey, Key: "esc", Time: at(200 * time.Millisecond)},
	}}

	steps, err := New(src, Options{}).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(steps) != 1 || steps[0].Action != workflow.MouseClick {
		t.Errorf("expected a single click step, got %+v", steps)
	}
}

func TestRecordCaptureUnavailable(t *testing.T) {
	src := &fakeSource{err: ErrCaptureUnavailable}

	steps, err := New(src, Options{}).Record()
	if !errors.Is(err, ErrCaptureUnavailable) {
		t.Fatalf("expected ErrCaptureUnavailable, got %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("no steps expected, got %+v", steps)
	}
}
