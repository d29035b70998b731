package workflow

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewMouseStep(t *testing.T) {
	step, err := NewMouseStep(MouseClick, 10, 20, 0.5)
	if err != nil {
		t.Fatalf("valid step rejected: %v", err)
	}
	if step.Type != TypeMouse || step.X != 10 || step.Y != 20 || step.Delay != 0.5 {
		t.Errorf("unexpected step: %+v", step)
	}

	if _, err := NewMouseStep("Double Click", 0, 0, 0); err == nil {
		t.Error("unknown action should be rejected")
	}
	if _, err := NewMouseStep(MouseClick, 0, 0, -1); err == nil {
		t.Error("negative delay should be rejected")
	}
}

func TestNewKeyboardStep(t *testing.T) {
	if _, err := NewKeyboardStep(KeyTypeText, "hello", 0); err != nil {
		t.Fatalf("valid step rejected: %v", err)
	}

	_, err := NewKeyboardStep(KeyTypeText, "", 0)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "value" {
		t.Errorf("error should name the value field, got %q", verr.Field)
	}

	if _, err := NewKeyboardStep("Paste", "x", 0); err == nil {
		t.Error("unknown action should be rejected")
	}
}

func TestNewImageStep(t *testing.T) {
	path := writeTempImage(t)

	step, err := NewImageStep(path, DefaultImageDelay)
	if err != nil {
		t.Fatalf("valid step rejected: %v", err)
	}
	if step.Path != path || step.Delay != DefaultImageDelay {
		t.Errorf("unexpected step: %+v", step)
	}

	if _, err := NewImageStep(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("nonexistent file should be rejected")
	}
	if _, err := NewImageStep(t.TempDir(), 0); err == nil {
		t.Error("directory should be rejected")
	}
	if _, err := NewImageStep("", 0); err == nil {
		t.Error("empty path should be rejected")
	}
}

func TestNewLoopStep(t *testing.T) {
	body := []Step{{Type: TypeKeyboard, Action: KeyTypeText, Value: "x"}}

	if _, err := NewLoopStep(0, body, 0); err != nil {
		t.Errorf("zero count is valid (body skipped): %v", err)
	}
	if _, err := NewLoopStep(-1, body, 0); err == nil {
		t.Error("negative count should be rejected")
	}

	// Loop bodies may nest containers
	nested := []Step{{Type: TypeLoop, Count: 2, Steps: body}}
	if _, err := NewLoopStep(3, nested, 0); err != nil {
		t.Errorf("nested loop in loop body is valid: %v", err)
	}
}

func TestNewConditionalStep(t *testing.T) {
	leaf := []Step{{Type: TypeMouse, Action: MouseClick, X: 1, Y: 2}}

	c, err := NewCase("match me", leaf)
	if err != nil {
		t.Fatalf("valid case rejected: %v", err)
	}
	step, err := NewConditionalStep([]Case{c}, leaf, 0.1)
	if err != nil {
		t.Fatalf("valid conditional rejected: %v", err)
	}
	if step.Source != SourceClipboard {
		t.Errorf("source should default to clipboard, got %q", step.Source)
	}

	if _, err := NewCase("", leaf); err == nil {
		t.Error("empty case value should be rejected")
	}

	// Case and else bodies are leaf-only
	container := []Step{{Type: TypeLoop, Count: 1, Steps: leaf}}
	if _, err := NewCase("v", container); err == nil {
		t.Error("container step in case body should be rejected")
	}
	if _, err := NewConditionalStep(nil, container, 0); err == nil {
		t.Error("container step in else body should be rejected")
	}
}

func TestWorkflowRoundTrip(t *testing.T) {
	wf := Workflow{
		{Type: TypeMouse, Action: MouseRightClick, X: 100, Y: 200, Delay: 0.25},
		{Type: TypeKeyboard, Action: KeyHotkey, Value: "ctrl+s", Delay: 0.1},
		{Type: TypeImage, Path: "/tmp/button.png", Delay: 0.5},
		{
			Type:   TypeConditional,
			Source: SourceClipboard,
			Cases: []Case{
				{Value: "yes", Steps: []Step{{Type: TypeKeyboard, Action: KeyPressKey, Value: "enter", Delay: 0.05}}},
				{Value: "no", Steps: []Step{{Type: TypeKeyboard, Action: KeyPressKey, Value: "escape"}}},
			},
			ElseSteps: []Step{{Type: TypeMouse, Action: MouseClick, X: 5, Y: 6}},
			Delay:     0.1,
		},
		{
			Type:  TypeLoop,
			Count: 3,
			Steps: []Step{
				{Type: TypeKeyboard, Action: KeyTypeText, Value: "hi", Delay: 0.02},
				{Type: TypeLoop, Count: 2, Steps: []Step{{Type: TypeMouse, Action: MouseClick, X: 9, Y: 9}}},
			},
			Delay: 0.1,
		},
	}

	data, err := json.Marshal(wf)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Workflow
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, wf) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, wf)
	}
}

func TestStepSerializesDocumentedFieldNames(t *testing.T) {
	step := Step{Type: TypeMouse, Action: MouseClick, X: 1, Y: 2, Delay: 0.1}
	data, err := json.Marshal(step)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"type", "action", "x", "y", "delay"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("serialized step missing field %q", key)
		}
	}

	cond := Step{Type: TypeConditional, Source: SourceClipboard, Cases: []Case{{Value: "v"}}, ElseSteps: []Step{{Type: TypeMouse, Action: MouseClick}}}
	data, err = json.Marshal(cond)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"source", "cases", "else_steps"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("serialized conditional missing field %q", key)
		}
	}
}

func TestStepSummary(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Step{Type: TypeMouse, Action: MouseClick, X: 10, Y: 20}, "MOUSE Click at (10,20)"},
		{Step{Type: TypeKeyboard, Action: KeyTypeText, Value: "short"}, "KEYBOARD Type Text: 'short'"},
		{Step{Type: TypeKeyboard, Action: KeyTypeText, Value: "a very long text that keeps going"}, "KEYBOARD Type Text: 'a very long text tha...'"},
		{Step{Type: TypeImage, Path: "/home/u/shots/ok.png"}, "IMAGE click 'ok.png'"},
		{Step{Type: TypeConditional, Cases: []Case{{Value: "a"}, {Value: "b"}}, ElseSteps: []Step{{}}}, "COND-RECORD (clipboard) 2 cases, else:1 steps"},
		{Step{Type: TypeLoop, Count: 3, Steps: []Step{{}, {}}}, "LOOP BLOCK (3 times, 2 steps)"},
		{Step{Type: "mystery"}, "Unknown Step"},
	}
	for _, tt := range tests {
		if got := tt.step.Summary(); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}

func TestCloneStepsIsDeep(t *testing.T) {
	original := []Step{
		{
			Type:  TypeLoop,
			Count: 2,
			Steps: []Step{{Type: TypeKeyboard, Action: KeyTypeText, Value: "hi"}},
		},
		{
			Type:  TypeConditional,
			Cases: []Case{{Value: "v", Steps: []Step{{Type: TypeMouse, Action: MouseClick, X: 1}}}},
		},
	}

	cloned := CloneSteps(original)
	if !reflect.DeepEqual(cloned, original) {
		t.Fatal("clone should equal original")
	}

	cloned[0].Steps[0].Value = "changed"
	cloned[1].Cases[0].Steps[0].X = 99
	if original[0].Steps[0].Value != "hi" || original[1].Cases[0].Steps[0].X != 1 {
		t.Error("mutating the clone leaked into the original")
	}
}
