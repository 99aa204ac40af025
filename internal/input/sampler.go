// Package input coalesces asynchronous host input events into one
// core.InputSample per simulation tick.
package input

import (
	"sync"

	"github.com/vovakirdan/picklecatch/internal/core"
)

// Sampler buffers host events between ticks. It is safe for concurrent use:
// event producers (terminal, socket read pump) and the tick loop may run on
// different goroutines.
//
// Pointer deltas are summed, absolute positions and resizes are
// last-value-wins, triggers are queued in arrival order and delivered exactly
// once, and the autopilot key is level-held until released.
type Sampler struct {
	mu      sync.Mutex
	pending core.InputSample
	keyHeld bool
}

// NewSampler creates an empty sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// AddDelta accumulates relative horizontal pointer movement.
func (s *Sampler) AddDelta(dx float64) {
	s.mu.Lock()
	s.pending.DeltaX += dx
	s.mu.Unlock()
}

// SetAbsolute records an absolute pointer x (touch drag, terminal mouse).
func (s *Sampler) SetAbsolute(x float64) {
	s.mu.Lock()
	s.pending.Absolute = x
	s.pending.HasAbsolute = true
	s.mu.Unlock()
}

// SetKey sets the autopilot key level.
func (s *Sampler) SetKey(held bool) {
	s.mu.Lock()
	s.keyHeld = held
	s.mu.Unlock()
}

// ToggleKey flips the autopilot key level and returns the new level.
// Hosts without key-up events use it instead of SetKey.
func (s *Sampler) ToggleKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyHeld = !s.keyHeld
	return s.keyHeld
}

// KeyHeld returns the current autopilot key level.
func (s *Sampler) KeyHeld() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyHeld
}

// Trigger queues a discrete event.
func (s *Sampler) Trigger(t core.Trigger) {
	if t == core.TriggerNone {
		return
	}
	s.mu.Lock()
	s.pending.Triggers = append(s.pending.Triggers, t)
	s.mu.Unlock()
}

// Resize records a new canvas size.
func (s *Sampler) Resize(w, h float64) {
	s.mu.Lock()
	s.pending.Resize = &core.Size{W: w, H: h}
	s.mu.Unlock()
}

// Sample returns everything buffered since the previous call and resets the
// buffer. The key level is carried over.
func (s *Sampler) Sample() core.InputSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.pending
	out.Autopilot = s.keyHeld
	s.pending = core.InputSample{}
	return out
}
