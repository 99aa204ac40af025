// Package replay records runs as deterministic input logs and re-simulates
// them. A replay is the run's seed, canvas, configuration and one frame per
// playing tick; re-running those frames reproduces the run exactly.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// Replay errors.
var (
	ErrEmpty    = errors.New("replay has no frames")
	ErrMismatch = errors.New("replay diverged")
)

// Frame is the input consumed by one tick.
type Frame struct {
	Now    float64          `msgpack:"n"`
	Sample core.InputSample `msgpack:"s"`
}

// Replay is a finished run.
type Replay struct {
	ID         string            `msgpack:"id"`
	Seed       int64             `msgpack:"seed"`
	Canvas     core.Size         `msgpack:"canvas"`
	Config     config.GameConfig `msgpack:"config"`
	Frames     []Frame           `msgpack:"frames"`
	Score      int               `msgpack:"score"`
	Ticks      uint64            `msgpack:"ticks"`
	DurationMs float64           `msgpack:"duration_ms"`
	Hash       uint64            `msgpack:"hash"`
	RecordedAt time.Time         `msgpack:"recorded_at"`
}

// Duration returns the run length as a time.Duration.
func (r *Replay) Duration() time.Duration {
	return time.Duration(r.DurationMs * float64(time.Millisecond))
}

// Encode serializes a replay with msgpack.
func Encode(r *Replay) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode: %w", err)
	}
	return data, nil
}

// Decode parses a msgpack-encoded replay.
func Decode(data []byte) (*Replay, error) {
	var r Replay
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: cannot decode: %w", err)
	}
	return &r, nil
}

// Recorder watches a game's ticks and produces a Replay per finished run.
type Recorder struct {
	current *Replay
	started float64
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Recording reports whether a run is being recorded.
func (r *Recorder) Recording() bool {
	return r.current != nil
}

// Observe must be called after every g.Tick with the same timestamp, sample
// and returned events. It returns the finished replay on the tick the run
// ends, nil otherwise.
func (r *Recorder) Observe(g *picklecatch.Game, now float64, in core.InputSample, events []picklecatch.Event) *Replay {
	first := false
	for _, e := range events {
		if e.Kind == picklecatch.EventRunStarted {
			r.current = &Replay{
				ID:     uuid.NewString(),
				Seed:   e.Seed,
				Canvas: g.Canvas(),
				Config: g.Config(),
			}
			r.started = now
			first = true
		}
	}
	if r.current == nil {
		return nil
	}

	ended := false
	for _, e := range events {
		if e.Kind == picklecatch.EventGameOver {
			ended = true
		}
	}
	if !first && !ended && g.State() != picklecatch.StatePlaying {
		return nil
	}

	// Triggers never matter once a run is in progress, and a resize on
	// the first frame was applied before the run began.
	sample := in.WithoutTriggers()
	if first {
		sample.Resize = nil
	}
	r.current.Frames = append(r.current.Frames, Frame{Now: now, Sample: sample})

	if !ended {
		return nil
	}
	done := r.current
	r.current = nil
	done.Score = g.Score()
	done.Ticks = g.RunTicks()
	done.DurationMs = now - r.started
	snap := g.Snapshot()
	done.Hash = snap.Hash()
	done.RecordedAt = time.Now().UTC()
	return done
}

// Discard drops an unfinished recording.
func (r *Recorder) Discard() {
	r.current = nil
}
