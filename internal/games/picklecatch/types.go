// Package picklecatch implements the PickleCatch simulation: a catcher at the
// bottom of a court intercepts falling pickleballs, a single miss ends the run.
//
// The package is pure. It never touches a terminal, a socket or a speaker;
// hosts feed it timestamps and sampled input and react to the returned events
// and the Host callbacks.
package picklecatch

// State is the controller state.
type State string

const (
	StateWelcome  State = "welcome"  // Title screen, waiting for the start trigger
	StatePlaying  State = "playing"  // Simulation running
	StateGameOver State = "gameOver" // Frozen after a miss, waiting for restart
)

// SoundKind names an audio cue.
type SoundKind string

const (
	SoundPop         SoundKind = "pop"         // normal object spawned
	SoundSplash      SoundKind = "splash"      // normal object caught
	SoundDoomsday    SoundKind = "doomsday"    // object missed, run over
	SoundGoldenSpawn SoundKind = "goldenSpawn" // golden object spawned
	SoundGoldenCatch SoundKind = "goldenCatch" // golden object caught, power-up on
)

// SoundKinds lists every cue.
func SoundKinds() []SoundKind {
	return []SoundKind{SoundPop, SoundSplash, SoundDoomsday, SoundGoldenSpawn, SoundGoldenCatch}
}

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventRunStarted EventKind = iota
	EventSpawned
	EventCaught
	EventMissed
	EventPowerUpStarted
	EventPowerUpEnded
	EventGameOver
	EventCaptureRequested
	EventCaptureReleased
	EventSound
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run_started"
	case EventSpawned:
		return "spawned"
	case EventCaught:
		return "caught"
	case EventMissed:
		return "missed"
	case EventPowerUpStarted:
		return "powerup_started"
	case EventPowerUpEnded:
		return "powerup_ended"
	case EventGameOver:
		return "game_over"
	case EventCaptureRequested:
		return "capture_requested"
	case EventCaptureReleased:
		return "capture_released"
	case EventSound:
		return "sound"
	default:
		return "unknown"
	}
}

// Event is a single outcome of a tick.
type Event struct {
	Kind   EventKind
	At     float64   // tick timestamp
	Golden bool      // Spawned, Caught, Missed
	Score  int       // score after the event
	Sound  SoundKind // EventSound only
	Seed   int64     // EventRunStarted only
}

// Host receives the side effects of the simulation.
// Implementations must not block; the tick calls them synchronously.
type Host interface {
	PlaySound(kind SoundKind)
	RequestExclusiveInput()
	ReleaseExclusiveInput()
}

// NopHost ignores every callback. It stands in when no capability exists.
type NopHost struct{}

func (NopHost) PlaySound(SoundKind)    {}
func (NopHost) RequestExclusiveInput() {}
func (NopHost) ReleaseExclusiveInput() {}
