package recorder

import "github.com/vector233/AsgFlow/internal/workflow"

// Options configures a recording session
type Options struct {
	// StopKey ends the capture when pressed. Default "esc".
	StopKey string
	// StopHoldSeconds ends the capture when the right mouse button is held
	// at least this long and then released. Default 2.0.
	StopHoldSeconds float64
}

func (o Options) withDefaults() Options {
	if o.StopKey == "" {
		o.StopKey = "esc"
	}
	if o.StopHoldSeconds <= 0 {
		o.StopHoldSeconds = 2.0
	}
	return o
}

// Recorder captures a live input session and converts it into workflow steps
type Recorder struct {
	src  Source
	opts Options
}

// New creates a recorder over the given event source
func New(src Source, opts Options) *Recorder {
	return &Recorder{src: src, opts: opts.withDefaults()}
}

// Record captures events until a stop gesture and returns the normalized
// steps. An unavailable capture backend returns ErrCaptureUnavailable and no
// steps; callers treat that as the feature being disabled, not a failure.
//
// Two gestures end the capture: pressing the stop key, or holding the right
// mouse button past the hold threshold and releasing it. Nothing after the
// stop gesture is recorded, and the terminal hold itself is discarded.
func (r *Recorder) Record() ([]workflow.Step, error) {
	events, err := r.src.Events()
	if err != nil {
		return nil, err
	}
	defer r.src.Close()

	var rec []RawEvent
	rightDownAt := -1 // index of the pending right-press in rec

capture:
	for ev := range events {
		switch ev.Kind {
		case KindChar:
			rec = append(rec, ev)

		case KindNamedKey:
			if ev.Key == r.opts.StopKey {
				break capture
			}
			rec = append(rec, ev)

		case KindMouse:
			if ev.Button == "right" {
				if ev.Pressed {
					rightDownAt = len(rec)
					rec = append(rec, ev)
					continue
				}
				if rightDownAt >= 0 {
					held := ev.Time.Sub(rec[rightDownAt].Time).Seconds()
					down := rightDownAt
					rightDownAt = -1
					if held >= r.opts.StopHoldSeconds {
						// Terminal hold: drop the recorded press and stop
						rec = append(rec[:down], rec[down+1:]...)
						break capture
					}
				}
				continue
			}
			if ev.Pressed {
				rec = append(rec, ev)
			}
		}
	}

	return Normalize(rec), nil
}
