package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// Player plays cues on the local speaker. An uninitialized or failed player
// silently drops every cue, so gameplay never depends on an audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	seed        int64
}

// NewPlayer creates a player. Call Initialize to open the speaker.
func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted drops cues while muted.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether cues are dropped.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Active reports whether cues reach the speaker.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized && !p.muted
}

// PlaySound queues a cue. Fire-and-forget; unknown kinds are ignored.
func (p *Player) PlaySound(kind picklecatch.SoundKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	cue, ok := CueFor(kind)
	if !ok {
		return
	}

	p.seed++
	streamer := cue.Streamer(sampleRate, p.seed)
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
