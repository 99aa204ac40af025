package replay

import (
	"fmt"

	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// Simulate re-runs a replay on a fresh game and returns it in its final state.
func Simulate(r *Replay) (*picklecatch.Game, error) {
	p, err := NewPlayback(r, nil)
	if err != nil {
		return nil, err
	}
	for !p.Done() {
		p.Step()
	}
	return p.Game(), nil
}

// Verify re-simulates a replay and checks it against the recorded result.
func Verify(r *Replay) error {
	g, err := Simulate(r)
	if err != nil {
		return err
	}
	snap := g.Snapshot()
	if got := snap.Hash(); got != r.Hash {
		return fmt.Errorf("replay: %w: hash %x, recorded %x", ErrMismatch, got, r.Hash)
	}
	if g.Score() != r.Score {
		return fmt.Errorf("replay: %w: score %d, recorded %d", ErrMismatch, g.Score(), r.Score)
	}
	return nil
}

// Playback feeds a replay's frames into a game one tick at a time, so a host
// can show it at recorded speed.
type Playback struct {
	replay *Replay
	game   *picklecatch.Game
	next   int
}

// NewPlayback prepares a game positioned at the start of the replayed run.
// The host receives the run's sounds; nil plays silently.
func NewPlayback(r *Replay, host picklecatch.Host) (*Playback, error) {
	if len(r.Frames) == 0 {
		return nil, fmt.Errorf("replay: %w", ErrEmpty)
	}
	g := picklecatch.New(r.Config, r.Canvas, r.Seed, host)
	g.StartRunWithSeed(r.Frames[0].Now, r.Seed)
	return &Playback{replay: r, game: g}, nil
}

// Game returns the game being driven.
func (p *Playback) Game() *picklecatch.Game {
	return p.game
}

// Done reports whether every frame was consumed.
func (p *Playback) Done() bool {
	return p.next >= len(p.replay.Frames)
}

// Now returns the timestamp of the last consumed frame.
func (p *Playback) Now() float64 {
	if p.next == 0 {
		return p.replay.Frames[0].Now
	}
	return p.replay.Frames[p.next-1].Now
}

// Step consumes one frame.
func (p *Playback) Step() {
	if p.Done() {
		return
	}
	f := p.replay.Frames[p.next]
	p.game.Tick(f.Now, f.Sample)
	p.next++
}

// AdvanceTo consumes every frame up to elapsed milliseconds after the first.
func (p *Playback) AdvanceTo(elapsed float64) {
	start := p.replay.Frames[0].Now
	for !p.Done() && p.replay.Frames[p.next].Now-start <= elapsed {
		p.Step()
	}
}
