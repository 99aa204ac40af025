// Package audio synthesizes the game's sound cues with beep and plays them
// on the local speaker. Every cue is generated, there are no asset files.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

const (
	sampleRate = beep.SampleRate(44100)
	silence    = 0.001 // gain the fade ramps towards
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveNoise
)

// Cue describes a one-shot synthesized sound.
type Cue struct {
	Wave      Wave
	StartFreq float64       // Hz
	EndFreq   float64       // Hz, reached exponentially after Sweep
	Sweep     time.Duration // 0 keeps StartFreq
	Gain      float64       // initial gain
	Fade      time.Duration // exponential ramp from Gain to silence
	Length    time.Duration
}

// CueFor returns the cue for a sound kind.
func CueFor(kind picklecatch.SoundKind) (Cue, bool) {
	switch kind {
	case picklecatch.SoundPop:
		return Cue{Wave: WaveSine, StartFreq: 880, Gain: 0.3, Fade: 100 * time.Millisecond, Length: 100 * time.Millisecond}, true
	case picklecatch.SoundSplash:
		return Cue{Wave: WaveNoise, Gain: 0.2, Fade: 150 * time.Millisecond, Length: 150 * time.Millisecond}, true
	case picklecatch.SoundDoomsday:
		return Cue{
			Wave: WaveSaw, StartFreq: 110, EndFreq: 55, Sweep: 400 * time.Millisecond,
			Gain: 0.4, Fade: 500 * time.Millisecond, Length: 500 * time.Millisecond,
		}, true
	case picklecatch.SoundGoldenSpawn:
		return Cue{
			Wave: WaveSine, StartFreq: 1320, EndFreq: 1760, Sweep: 150 * time.Millisecond,
			Gain: 0.25, Fade: 200 * time.Millisecond, Length: 200 * time.Millisecond,
		}, true
	case picklecatch.SoundGoldenCatch:
		return Cue{
			Wave: WaveSine, StartFreq: 660, EndFreq: 1320, Sweep: 300 * time.Millisecond,
			Gain: 0.3, Fade: 350 * time.Millisecond, Length: 350 * time.Millisecond,
		}, true
	default:
		return Cue{}, false
	}
}

// Streamer returns a finite streamer rendering the cue.
func (c Cue) Streamer(sr beep.SampleRate, seed int64) beep.Streamer {
	return &cueGenerator{
		cue:   c,
		sr:    sr,
		total: sr.N(c.Length),
		rng:   rand.New(rand.NewSource(seed)), //#nosec G404 -- noise, not security
	}
}

// cueGenerator renders a Cue sample by sample.
type cueGenerator struct {
	cue   Cue
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
	rng   *rand.Rand
}

func (g *cueGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		var val float64
		switch g.cue.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * g.phase)
		case WaveSaw:
			val = 2.0 * (g.phase - 0.5)
		case WaveNoise:
			val = g.rng.Float64()*2 - 1
		}
		val *= g.cue.gainAt(t)

		samples[i][0] = val
		samples[i][1] = val

		g.phase += g.cue.freqAt(t) / float64(g.sr)
		g.phase -= math.Floor(g.phase) // Keep in [0, 1)
		g.pos++
	}
	return len(samples), true
}

func (g *cueGenerator) Err() error {
	return nil
}

// freqAt returns the oscillator frequency t seconds into the cue.
func (c Cue) freqAt(t float64) float64 {
	sweep := c.Sweep.Seconds()
	if sweep <= 0 || c.EndFreq <= 0 || c.StartFreq <= 0 {
		return c.StartFreq
	}
	p := math.Min(t/sweep, 1)
	return c.StartFreq * math.Pow(c.EndFreq/c.StartFreq, p)
}

// gainAt returns the envelope gain t seconds into the cue.
func (c Cue) gainAt(t float64) float64 {
	fade := c.Fade.Seconds()
	if fade <= 0 || c.Gain <= 0 {
		return c.Gain
	}
	p := math.Min(t/fade, 1)
	return c.Gain * math.Pow(silence/c.Gain, p)
}
