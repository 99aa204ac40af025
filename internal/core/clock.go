package core

import "time"

// Clock supplies monotonically increasing timestamps in milliseconds.
type Clock interface {
	Now() float64
}

// MonotonicClock measures milliseconds elapsed since it was created.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock starting at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now returns the elapsed milliseconds.
func (c *MonotonicClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// At converts a wall-clock instant (such as a tick message time) to clock time.
func (c *MonotonicClock) At(t time.Time) float64 {
	return float64(t.Sub(c.start)) / float64(time.Millisecond)
}

// ManualClock is a clock advanced explicitly. Used by tests and replays.
type ManualClock struct {
	now float64
}

// NewManualClock creates a manual clock at the given time.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() float64 {
	return c.now
}

// Advance moves the clock forward by ms and returns the new time.
// Negative steps are ignored to keep the clock monotonic.
func (c *ManualClock) Advance(ms float64) float64 {
	if ms > 0 {
		c.now += ms
	}
	return c.now
}
