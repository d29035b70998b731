package recorder

import (
	"reflect"
	"testing"
	"time"

	"github.com/vector233/AsgFlow/internal/workflow"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return base.Add(offset)
}

func TestNormalizeCoalescesConsecutiveChars(t *testing.T) {
	// Stream opens with a named key so the following character run carries a
	// non-zero starting delay: [enter][a +100ms][b +50ms][click +50ms][c +80ms]
	events := []RawEvent{
		{Kind: KindNamedKey, Key: "enter", Time: at(0)},
		{Kind: KindChar, Char: 'a', Time: at(100 * time.Millisecond)},
		{Kind: KindChar, Char: 'b', Time: at(150 * time.Millisecond)},
		{Kind: KindMouse, Button: "left", X: 30, Y: 40, Pressed: true, Time: at(200 * time.Millisecond)},
		{Kind: KindChar, Char: 'c', Time: at(280 * time.Millisecond)},
	}

	want := []workflow.Step{
		{Type: workflow.TypeKeyboard, Action: workflow.KeyPressKey, Value: "enter", Delay: 0},
		{Type: workflow.TypeKeyboard, Action: workflow.KeyTypeText, Value: "ab", Delay: 0.1},
		{Type: workflow.TypeMouse, Action: workflow.MouseClick, X: 30, Y: 40, Delay: 0.05},
		{Type: workflow.TypeKeyboard, Action: workflow.KeyTypeText, Value: "c", Delay: 0.08},
	}

	if got := Normalize(events); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeFirstEventDelayIsZero(t *testing.T) {
	events := []RawEvent{
		{Kind: KindChar, Char: 'x', Time: at(3 * time.Second)},
	}
	got := Normalize(events)
	if len(got) != 1 || got[0].Delay != 0 {
		t.Errorf("first event must have zero delay, got %+v", got)
	}
}

func TestNormalizeTrailingBufferFlushed(t *testing.T) {
	events := []RawEvent{
		{Kind: KindChar, Char: 'h', Time: at(0)},
		{Kind: KindChar, Char: 'i', Time: at(20 * time.Millisecond)},
	}
	want := []workflow.Step{
		{Type: workflow.TypeKeyboard, Action: workflow.KeyTypeText, Value: "hi", Delay: 0},
	}
	if got := Normalize(events); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeRoundsToMilliseconds(t *testing.T) {
	events := []RawEvent{
		{Kind: KindNamedKey, Key: "tab", Time: at(0)},
		{Kind: KindNamedKey, Key: "tab", Time: at(123456700 * time.Nanosecond)},
	}
	got := Normalize(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 steps, got %+v", got)
	}
	if got[1].Delay != 0.123 {
		t.Errorf("delay should round to 3 decimals, got %v", got[1].Delay)
	}
}

func TestNormalizeClampsClockSkewToZero(t *testing.T) {
	events := []RawEvent{
		{Kind: KindNamedKey, Key: "tab", Time: at(time.Second)},
		{Kind: KindNamedKey, Key: "tab", Time: at(0)}, // out-of-order timestamp
	}
	got := Normalize(events)
	if got[1].Delay != 0 {
		t.Errorf("negative gap should clamp to 0, got %v", got[1].Delay)
	}
}

func TestNormalizeEmptyStream(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("expected no steps, got %+v", got)
	}
}
