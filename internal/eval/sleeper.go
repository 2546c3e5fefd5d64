package eval

import "time"

// Sleeper is the delay policy behind SLEEP formulas. It is injected rather
// than hard-wired to the real clock so recomputation stays testable.
type Sleeper interface {
	// Sleep blocks for the given number of seconds. Non-positive values
	// are a no-op.
	Sleep(seconds int)
}

// ClockSleeper blocks on the real clock.
type ClockSleeper struct{}

func (ClockSleeper) Sleep(seconds int) {
	if seconds > 0 {
		time.Sleep(time.Duration(seconds) * time.Second)
	}
}

// NoopSleeper never blocks. Used in tests and anywhere a SLEEP formula's
// value matters but its delay does not.
type NoopSleeper struct{}

func (NoopSleeper) Sleep(int) {}
