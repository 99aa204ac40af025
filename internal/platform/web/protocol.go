package web

import "encoding/json"

// Client -> Server message types
const (
	MsgInput  = "input"  // coalesced pointer input and autopilot key
	MsgTap    = "tap"    // click or tap: start or restart
	MsgResize = "resize" // canvas size changed
)

// Server -> Client message types
const (
	MsgHello   = "hello"   // first message on a connection
	MsgScene   = "scene"   // one per tick
	MsgSound   = "sound"   // play a cue
	MsgCapture = "capture" // acquire or release pointer lock
	MsgReplay  = "replay"  // a finished run was recorded
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is sent by the client once per animation frame.
type ClientInput struct {
	DX   float64 `json:"dx"`   // pointer-lock movement since the last message
	X    float64 `json:"x"`    // touch position in canvas units
	HasX bool    `json:"hasX"` // X is set
	Auto bool    `json:"auto"` // autopilot key held
}

// ResizeMsg carries the client canvas size in canvas units.
type ResizeMsg struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// HelloMsg identifies the session.
type HelloMsg struct {
	Session  string `json:"session"`
	TickRate int    `json:"tickRate"`
}

// SoundMsg names a cue to play.
type SoundMsg struct {
	Kind string `json:"kind"`
}

// CaptureMsg toggles pointer lock.
type CaptureMsg struct {
	On bool `json:"on"`
}

// ReplayMsg reports a saved run.
type ReplayMsg struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
	Saved bool   `json:"saved"`
}
