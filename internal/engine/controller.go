package engine

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/vector233/AsgFlow/internal/automation"
	"github.com/vector233/AsgFlow/internal/i18n"
	"github.com/vector233/AsgFlow/internal/workflow"
)

// State of the run controller
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Controller bridges the engine to the UI. It owns the run/stop signal and
// the single background run goroutine; Start while running is rejected.
type Controller struct {
	engine *Engine
	hooks  Hooks
	log    *slog.Logger

	mu    sync.Mutex
	state State
	sig   *Signal
}

// NewController creates a controller driving the given automator
func NewController(auto automation.Automator, hooks Hooks) *Controller {
	return &Controller{
		engine: New(auto, hooks),
		hooks:  hooks,
		log:    slog.Default().With("component", "controller"),
	}
}

// State returns the current run state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Running reports whether a run is in progress
func (c *Controller) Running() bool {
	return c.State() != StateIdle
}

// Start launches the workflow on a background goroutine. The engine runs
// against a private copy of the steps, so the caller's workflow stays free
// for editing once the controller returns to idle.
func (c *Controller) Start(wf workflow.Workflow) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	sig := NewSignal()
	c.sig = sig
	c.state = StateRunning
	c.mu.Unlock()

	c.hooks.state(StateRunning)
	c.hooks.status(i18n.T("status_running"))

	steps := workflow.CloneSteps(wf)
	go c.run(steps, sig)
	return nil
}

// Stop asserts the stop signal; idempotent and safe from any state
func (c *Controller) Stop() {
	c.mu.Lock()
	sig := c.sig
	if c.state == StateRunning {
		c.state = StateStopping
	}
	c.mu.Unlock()

	if sig == nil {
		return
	}
	sig.Stop()
	c.hooks.state(StateStopping)
	c.hooks.status(i18n.T("status_stopping"))
}

func (c *Controller) run(steps []workflow.Step, sig *Signal) {
	err := c.engine.Run(steps, sig)

	c.mu.Lock()
	c.state = StateIdle
	c.sig = nil
	c.mu.Unlock()

	switch {
	case err == nil:
		c.hooks.status(i18n.T("status_done"))
	case errors.Is(err, ErrStopped):
		c.hooks.status(i18n.T("status_stopped"))
	default:
		c.log.Warn("run failed", "error", err)
		c.hooks.status(i18n.Tf("status_failed", err))
	}
	c.hooks.state(StateIdle)
}
