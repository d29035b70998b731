package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/vector233/AsgFlow/internal/workflow"
)

func waitForIdle(t *testing.T, c *Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !c.Running() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("controller did not return to idle")
}

func TestStartRejectsConcurrentRun(t *testing.T) {
	fake := &fakeAutomator{}
	c := NewController(fake, Hooks{})

	wf := workflow.Workflow{mouseClick(1, 1, 2.0)}
	if err := c.Start(wf); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := c.Start(wf); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start: expected ErrAlreadyRunning, got %v", err)
	}

	c.Stop()
	waitForIdle(t, c)
}

func TestStopIsIdempotent(t *testing.T) {
	fake := &fakeAutomator{}
	c := NewController(fake, Hooks{})

	// Stop with nothing running is a no-op
	c.Stop()
	c.Stop()
	if c.Running() {
		t.Fatal("controller should be idle")
	}

	wf := workflow.Workflow{mouseClick(1, 1, 2.0)}
	if err := c.Start(wf); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Stop()
	c.Stop()
	waitForIdle(t, c)
}

func TestRunCompletesAndReportsStates(t *testing.T) {
	fake := &fakeAutomator{}
	states := make(chan State, 8)
	c := NewController(fake, Hooks{
		OnState: func(s State) { states <- s },
	})

	wf := workflow.Workflow{typeText("hi", 0)}
	if err := c.Start(wf); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitForIdle(t, c)

	if got := <-states; got != StateRunning {
		t.Errorf("first transition: got %v, want running", got)
	}
	if got := <-states; got != StateIdle {
		t.Errorf("final transition: got %v, want idle", got)
	}

	if got := fake.calls(); len(got) != 1 {
		t.Errorf("expected one leaf invocation, got %v", got)
	}
}

func TestRestartAfterStopRunsFromStepZero(t *testing.T) {
	fake := &fakeAutomator{}
	c := NewController(fake, Hooks{})

	long := workflow.Workflow{mouseClick(1, 1, 2.0)}
	if err := c.Start(long); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Stop()
	waitForIdle(t, c)

	// A stopped run must not poison the next one
	short := workflow.Workflow{typeText("again", 0)}
	if err := c.Start(short); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	waitForIdle(t, c)

	if got := fake.calls(); len(got) != 1 || got[0] != `TypeText("again")` {
		t.Errorf("second run trace: %v", got)
	}
}
