package recorder

import (
	"math"
	"strings"
	"time"

	"github.com/vector233/AsgFlow/internal/workflow"
)

// Normalize converts a captured event stream into replayable steps.
//
// Delays reproduce the original pacing: the first event gets delay 0, every
// later event gets the time elapsed since the previous event, rounded to
// milliseconds. A single forward scan then merges runs of consecutive
// single-character presses into one Type Text step carrying the delay of the
// run's first character.
func Normalize(events []RawEvent) []workflow.Step {
	var steps []workflow.Step
	var buf strings.Builder
	var bufDelay float64

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		steps = append(steps, workflow.Step{
			Type:   workflow.TypeKeyboard,
			Action: workflow.KeyTypeText,
			Value:  buf.String(),
			Delay:  bufDelay,
		})
		buf.Reset()
	}

	var prev time.Time
	for i, ev := range events {
		var delay float64
		if i > 0 {
			delay = roundDelay(ev.Time.Sub(prev))
		}
		prev = ev.Time

		switch ev.Kind {
		case KindChar:
			if buf.Len() == 0 {
				bufDelay = delay
			}
			buf.WriteRune(ev.Char)

		case KindNamedKey:
			flush()
			steps = append(steps, workflow.Step{
				Type:   workflow.TypeKeyboard,
				Action: workflow.KeyPressKey,
				Value:  ev.Key,
				Delay:  delay,
			})

		case KindMouse:
			flush()
			steps = append(steps, workflow.Step{
				Type:   workflow.TypeMouse,
				Action: workflow.MouseClick,
				X:      ev.X,
				Y:      ev.Y,
				Delay:  delay,
			})
		}
	}
	flush()

	return steps
}

// roundDelay clamps to zero and rounds to 3 decimal places of seconds
func roundDelay(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return math.Round(d.Seconds()*1000) / 1000
}
