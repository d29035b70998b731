package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/vector233/AsgFlow/internal/automation"
	"github.com/vector233/AsgFlow/internal/workflow"
)

// Fixed leaf-action pacing
const (
	// moveDuration is the pointer transition time for mouse steps
	moveDuration = 200 * time.Millisecond
	// typeInterval spaces out characters so input methods keep up
	typeInterval = 10 * time.Millisecond
	// matchConfidence is the image lookup threshold
	matchConfidence = 0.8
)

// Hooks carries the observations the engine reports back to the UI.
// All callbacks are optional and are invoked from the run goroutine.
type Hooks struct {
	// OnStep fires with the index of the top-level step about to execute
	OnStep func(index int)
	// OnIteration fires with 1-based loop progress
	OnIteration func(i, count int)
	// OnState fires on controller state transitions
	OnState func(state State)
	// OnStatus fires with user-facing status text
	OnStatus func(text string)
}

func (h Hooks) step(index int) {
	if h.OnStep != nil {
		h.OnStep(index)
	}
}

func (h Hooks) iteration(i, count int) {
	if h.OnIteration != nil {
		h.OnIteration(i, count)
	}
}

func (h Hooks) state(s State) {
	if h.OnState != nil {
		h.OnState(s)
	}
}

func (h Hooks) status(text string) {
	if h.OnStatus != nil {
		h.OnStatus(text)
	}
}

// Engine interprets a workflow against the automation backend
type Engine struct {
	auto  automation.Automator
	hooks Hooks
	log   *slog.Logger
}

// New creates an engine over the given automator
func New(auto automation.Automator, hooks Hooks) *Engine {
	return &Engine{
		auto:  auto,
		hooks: hooks,
		log:   slog.Default().With("component", "engine"),
	}
}

// Run walks the workflow from step 0 until completion, a fatal leaf failure
// or a stop request. The signal is checked before and after every delay
// sleep, before every dispatch and before every loop/conditional sub-step;
// a leaf action already in flight always finishes.
func (e *Engine) Run(wf workflow.Workflow, sig *Signal) error {
	for pc := 0; pc < len(wf); pc++ {
		if sig.Stopped() {
			return ErrStopped
		}
		e.hooks.step(pc)

		step := wf[pc]
		if err := e.sleep(step.Delay, sig); err != nil {
			return err
		}
		if err := e.executeStep(step, sig); err != nil {
			return err
		}
	}
	e.log.Debug("run completed", "steps", len(wf))
	return nil
}

// sleep waits for the step's declared delay. The delay is an interruption
// point: a stop request wakes it immediately.
func (e *Engine) sleep(delay float64, sig *Signal) error {
	if sig.Stopped() {
		return ErrStopped
	}
	if delay <= 0 {
		return nil
	}

	t := time.NewTimer(time.Duration(delay * float64(time.Second)))
	defer t.Stop()
	select {
	case <-t.C:
	case <-sig.Done():
		return ErrStopped
	}
	if sig.Stopped() {
		return ErrStopped
	}
	return nil
}

// executeStep dispatches one step of any type
func (e *Engine) executeStep(step workflow.Step, sig *Signal) error {
	switch step.Type {
	case workflow.TypeConditional:
		return e.executeConditional(step, sig)
	case workflow.TypeLoop:
		return e.executeLoop(step, sig)
	default:
		return e.executeLeaf(step)
	}
}

// executeLeaf performs a single mouse, keyboard or image action.
// Errors from here are fatal to the run; there is no per-step retry.
func (e *Engine) executeLeaf(step workflow.Step) error {
	switch step.Type {
	case workflow.TypeMouse:
		if err := e.auto.MoveCursor(step.X, step.Y, moveDuration); err != nil {
			return err
		}
		switch step.Action {
		case workflow.MouseClick:
			return e.auto.Click()
		case workflow.MouseRightClick:
			return e.auto.RightClick()
		case workflow.MouseHold:
			return e.auto.Hold()
		case workflow.MouseRelease:
			return e.auto.Release()
		}

	case workflow.TypeKeyboard:
		switch step.Action {
		case workflow.KeyTypeText:
			return e.auto.TypeText(step.Value, typeInterval)
		case workflow.KeyPressKey:
			return e.auto.PressKey(step.Value)
		case workflow.KeyHotkey:
			return e.auto.SendHotkey(SplitHotkey(step.Value)...)
		}

	case workflow.TypeImage:
		pt, err := e.auto.LocateOnScreen(step.Path, matchConfidence)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(step.Path), err)
		}
		if err := e.auto.MoveCursor(pt.X, pt.Y, moveDuration); err != nil {
			return err
		}
		return e.auto.Click()
	}
	return nil
}

// executeConditional reads the condition source once and runs the first
// case whose value is contained in it, or the else branch when none match.
// Empty source text matches no case; case order decides ties.
func (e *Engine) executeConditional(step workflow.Step, sig *Signal) error {
	source := e.readConditionSource(step)
	if sig.Stopped() {
		return ErrStopped
	}

	if source != "" {
		for _, c := range step.Cases {
			if c.Value == "" {
				continue
			}
			if strings.Contains(source, c.Value) {
				e.log.Debug("conditional matched", "case", c.Value)
				return e.runLeafSequence(c.Steps, sig)
			}
		}
	}
	return e.runLeafSequence(step.ElseSteps, sig)
}

// readConditionSource resolves the live condition text. An unreadable
// source behaves as empty text, which matches no case.
func (e *Engine) readConditionSource(step workflow.Step) string {
	switch step.Source {
	case "", workflow.SourceClipboard:
		text, err := e.auto.ReadClipboard()
		if err != nil {
			e.log.Debug("clipboard read failed", "error", err)
			return ""
		}
		return text
	}
	return ""
}

// runLeafSequence executes a conditional branch body: each sub-step applies
// its own delay and the signal is rechecked before every sub-step
func (e *Engine) runLeafSequence(steps []workflow.Step, sig *Signal) error {
	for _, sub := range steps {
		if sig.Stopped() {
			return ErrStopped
		}
		if err := e.sleep(sub.Delay, sig); err != nil {
			return err
		}
		if err := e.executeLeaf(sub); err != nil {
			return err
		}
	}
	return nil
}

// executeLoop runs the loop body count times sequentially. Count zero skips
// the body entirely. Bodies may contain nested loops and conditionals.
func (e *Engine) executeLoop(step workflow.Step, sig *Signal) error {
	for i := 0; i < step.Count; i++ {
		if sig.Stopped() {
			return ErrStopped
		}
		e.hooks.iteration(i+1, step.Count)

		for _, sub := range step.Steps {
			if sig.Stopped() {
				return ErrStopped
			}
			if err := e.sleep(sub.Delay, sig); err != nil {
				return err
			}
			if err := e.executeStep(sub, sig); err != nil {
				return err
			}
		}
	}
	return nil
}

// SplitHotkey splits a hotkey value like "ctrl + shift + p" into its keys
func SplitHotkey(value string) []string {
	parts := strings.Split(value, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
