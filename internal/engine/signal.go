package engine

import "sync"

// Signal is the run/stop flag shared between the foreground goroutine and
// one background run. Each run gets its own Signal, so two runs can never
// observe each other's stop request.
type Signal struct {
	once sync.Once
	done chan struct{}
}

// NewSignal creates an unasserted signal
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Stop asserts the signal; idempotent and safe from any goroutine
func (s *Signal) Stop() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Stopped reports whether the signal has been asserted
func (s *Signal) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the signal is asserted, for use in
// select alongside timers
func (s *Signal) Done() <-chan struct{} {
	return s.done
}
