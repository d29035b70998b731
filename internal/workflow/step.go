package workflow

import (
	"fmt"
	"os"
	"path/filepath"
)

// StepType identifies the kind of automation a step performs
type StepType string

const (
	TypeMouse       StepType = "mouse"
	TypeKeyboard    StepType = "keyboard"
	TypeImage       StepType = "image"
	TypeConditional StepType = "conditional_record"
	TypeLoop        StepType = "loop"
)

// Mouse actions
const (
	MouseClick      = "Click"
	MouseRightClick = "Right Click"
	MouseHold       = "Hold"
	MouseRelease    = "Release"
)

// Keyboard actions
const (
	KeyTypeText = "Type Text"
	KeyPressKey = "Press Key"
	KeyHotkey   = "Hotkey"
)

// SourceClipboard is the only condition source currently supported
const SourceClipboard = "clipboard"

// Default delays offered by the editing dialogs. Image search needs more
// time for the screen to settle before capture.
const (
	DefaultDelay      = 0.1
	DefaultImageDelay = 0.5
)

// Step represents one automation operation in a workflow.
// The Type field selects which of the optional fields are meaningful.
type Step struct {
	Type      StepType `json:"type"`
	Action    string   `json:"action,omitempty"`     // mouse/keyboard action name
	X         int      `json:"x,omitempty"`          // mouse X coordinate
	Y         int      `json:"y,omitempty"`          // mouse Y coordinate
	Value     string   `json:"value,omitempty"`      // text to type, key name or hotkey combo
	Path      string   `json:"path,omitempty"`       // screenshot image to locate on screen
	Source    string   `json:"source,omitempty"`     // condition source, currently "clipboard"
	Cases     []Case   `json:"cases,omitempty"`      // conditional branches, first match wins
	ElseSteps []Step   `json:"else_steps,omitempty"` // executed when no case matches
	Count     int      `json:"count,omitempty"`      // loop iteration count
	Steps     []Step   `json:"steps,omitempty"`      // loop body
	Delay     float64  `json:"delay"`                // seconds to wait before executing
}

// Case is one branch of a conditional step
type Case struct {
	Value string `json:"value"`
	Steps []Step `json:"steps"`
}

// Workflow is an ordered sequence of steps; order is execution order
type Workflow []Step

var mouseActions = map[string]bool{
	MouseClick:      true,
	MouseRightClick: true,
	MouseHold:       true,
	MouseRelease:    true,
}

var keyboardActions = map[string]bool{
	KeyTypeText: true,
	KeyPressKey: true,
	KeyHotkey:   true,
}

// NewMouseStep builds a validated mouse step
func NewMouseStep(action string, x, y int, delay float64) (Step, error) {
	if !mouseActions[action] {
		return Step{}, &ValidationError{Field: "action", Message: fmt.Sprintf("unknown mouse action %q", action)}
	}
	if err := validateDelay(delay); err != nil {
		return Step{}, err
	}
	return Step{Type: TypeMouse, Action: action, X: x, Y: y, Delay: delay}, nil
}

// NewKeyboardStep builds a validated keyboard step
func NewKeyboardStep(action, value string, delay float64) (Step, error) {
	if !keyboardActions[action] {
		return Step{}, &ValidationError{Field: "action", Message: fmt.Sprintf("unknown keyboard action %q", action)}
	}
	if value == "" {
		return Step{}, &ValidationError{Field: "value", Message: "value cannot be empty"}
	}
	if err := validateDelay(delay); err != nil {
		return Step{}, err
	}
	return Step{Type: TypeKeyboard, Action: action, Value: value, Delay: delay}, nil
}

// NewImageStep builds a validated image step. The image file must exist at
// authoring time; the screen lookup at run time does its own checking.
func NewImageStep(path string, delay float64) (Step, error) {
	if path == "" {
		return Step{}, &ValidationError{Field: "path", Message: "image path cannot be empty"}
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Step{}, &ValidationError{Field: "path", Message: fmt.Sprintf("%q is not an existing image file", path)}
	}
	if err := validateDelay(delay); err != nil {
		return Step{}, err
	}
	return Step{Type: TypeImage, Path: path, Delay: delay}, nil
}

// NewCase builds a validated conditional branch. Bodies hold leaf steps only.
func NewCase(value string, steps []Step) (Case, error) {
	if value == "" {
		return Case{}, &ValidationError{Field: "value", Message: "case match text cannot be empty"}
	}
	if err := validateLeafOnly("steps", steps); err != nil {
		return Case{}, err
	}
	return Case{Value: value, Steps: steps}, nil
}

// NewConditionalStep builds a validated conditional step reading the clipboard
func NewConditionalStep(cases []Case, elseSteps []Step, delay float64) (Step, error) {
	for _, c := range cases {
		if c.Value == "" {
			return Step{}, &ValidationError{Field: "cases", Message: "case match text cannot be empty"}
		}
		if err := validateLeafOnly("cases", c.Steps); err != nil {
			return Step{}, err
		}
	}
	if err := validateLeafOnly("else_steps", elseSteps); err != nil {
		return Step{}, err
	}
	if err := validateDelay(delay); err != nil {
		return Step{}, err
	}
	return Step{Type: TypeConditional, Source: SourceClipboard, Cases: cases, ElseSteps: elseSteps, Delay: delay}, nil
}

// NewLoopStep builds a validated loop step. A zero count skips the body.
// Loop bodies may contain any step type, including nested loops.
func NewLoopStep(count int, steps []Step, delay float64) (Step, error) {
	if count < 0 {
		return Step{}, &ValidationError{Field: "count", Message: "repeat count cannot be negative"}
	}
	if err := validateDelay(delay); err != nil {
		return Step{}, err
	}
	return Step{Type: TypeLoop, Count: count, Steps: steps, Delay: delay}, nil
}

func validateDelay(delay float64) error {
	if delay < 0 {
		return &ValidationError{Field: "delay", Message: "delay cannot be negative"}
	}
	return nil
}

func validateLeafOnly(field string, steps []Step) error {
	for _, s := range steps {
		if !s.IsLeaf() {
			return &ValidationError{Field: field, Message: fmt.Sprintf("nested %s steps are not allowed here", s.Type)}
		}
	}
	return nil
}

// IsLeaf reports whether the step has no nested body
func (s Step) IsLeaf() bool {
	switch s.Type {
	case TypeMouse, TypeKeyboard, TypeImage:
		return true
	}
	return false
}

// Summary returns a short human-readable description for list display
func (s Step) Summary() string {
	switch s.Type {
	case TypeMouse:
		return fmt.Sprintf("MOUSE %s at (%d,%d)", s.Action, s.X, s.Y)
	case TypeKeyboard:
		preview := s.Value
		if s.Action == KeyTypeText && len(preview) > 20 {
			preview = preview[:20] + "..."
		}
		return fmt.Sprintf("KEYBOARD %s: '%s'", s.Action, preview)
	case TypeImage:
		return fmt.Sprintf("IMAGE click '%s'", filepath.Base(s.Path))
	case TypeConditional:
		src := s.Source
		if src == "" {
			src = SourceClipboard
		}
		return fmt.Sprintf("COND-RECORD (%s) %d cases, else:%d steps", src, len(s.Cases), len(s.ElseSteps))
	case TypeLoop:
		return fmt.Sprintf("LOOP BLOCK (%d times, %d steps)", s.Count, len(s.Steps))
	}
	return "Unknown Step"
}

// CloneSteps deep-copies a step list. Sub-editors work on a copy and the
// parent commits it back on confirmed save, so cancel discards edits.
func CloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s.clone()
	}
	return out
}

func (s Step) clone() Step {
	c := s
	c.Steps = CloneSteps(s.Steps)
	c.ElseSteps = CloneSteps(s.ElseSteps)
	if s.Cases != nil {
		c.Cases = make([]Case, len(s.Cases))
		for i, cs := range s.Cases {
			c.Cases[i] = Case{Value: cs.Value, Steps: CloneSteps(cs.Steps)}
		}
	}
	return c
}
