package core

// Trigger is a discrete, edge-triggered host event (click or tap).
type Trigger int

const (
	TriggerNone    Trigger = iota
	TriggerStart           // leave the welcome screen
	TriggerRestart         // start a new run after game over
)

// String returns a human-readable name for the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerStart:
		return "start"
	case TriggerRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// InputSample is the coalesced host input consumed by exactly one tick.
//
// Continuous signals use last-value-wins (Absolute) or are summed (DeltaX);
// discrete triggers are delivered at least once, in arrival order.
type InputSample struct {
	// DeltaX is the summed relative pointer movement since the previous tick.
	DeltaX float64 `json:"dx" msgpack:"dx"`

	// Absolute is the latest absolute pointer x (touch drag), valid when HasAbsolute.
	Absolute    float64 `json:"x" msgpack:"x"`
	HasAbsolute bool    `json:"hasX" msgpack:"hx"`

	// Autopilot reports whether the autopilot key is held.
	Autopilot bool `json:"auto" msgpack:"a"`

	// Triggers are discrete events received since the previous tick.
	Triggers []Trigger `json:"triggers,omitempty" msgpack:"t,omitempty"`

	// Resize carries a new canvas size when the host surface changed.
	Resize *Size `json:"resize,omitempty" msgpack:"r,omitempty"`
}

// Has returns true if the sample carries the given trigger.
func (s InputSample) Has(t Trigger) bool {
	for _, tr := range s.Triggers {
		if tr == t {
			return true
		}
	}
	return false
}

// WithoutTriggers returns a copy of the sample with discrete triggers removed.
func (s InputSample) WithoutTriggers() InputSample {
	s.Triggers = nil
	return s
}
