package replay

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
)

// recordRun plays one run with wobbly input until the catcher misses.
func recordRun(t *testing.T, seed int64) *Replay {
	t.Helper()
	cfg := config.Default()
	cfg.Golden.Chance = 0.9
	g := picklecatch.New(cfg, core.Size{W: 640, H: 480}, seed, nil)
	rec := NewRecorder()
	rng := rand.New(rand.NewSource(seed))

	now := 500.0
	in := core.InputSample{
		Triggers: []core.Trigger{core.TriggerStart},
		Resize:   &core.Size{W: 600, H: 600},
	}
	for i := 0; i < 200000; i++ {
		events := g.Tick(now, in)
		if r := rec.Observe(g, now, in, events); r != nil {
			return r
		}
		now += 16.7
		in = core.InputSample{
			DeltaX:    (rng.Float64() - 0.5) * 30,
			Autopilot: i < 2000 && i%300 < 250,
		}
		if rng.Intn(40) == 0 {
			in.Triggers = []core.Trigger{core.TriggerRestart}
		}
	}
	t.Fatal("run never ended")
	return nil
}

func TestRecordAndVerify(t *testing.T) {
	r := recordRun(t, 11)

	if len(r.Frames) == 0 || uint64(len(r.Frames)) != r.Ticks {
		t.Fatalf("frames = %d, ticks = %d", len(r.Frames), r.Ticks)
	}
	if r.Seed != 11 || r.ID == "" {
		t.Errorf("seed = %d, id = %q", r.Seed, r.ID)
	}
	if r.Canvas.W != 600 {
		t.Errorf("canvas = %+v, want the size applied before the run", r.Canvas)
	}
	if r.Frames[0].Sample.Resize != nil {
		t.Error("first frame should not carry the pre-run resize")
	}
	for i, f := range r.Frames {
		if len(f.Sample.Triggers) != 0 {
			t.Fatalf("frame %d kept triggers", i)
		}
	}
	if r.DurationMs <= 0 {
		t.Errorf("duration = %v", r.DurationMs)
	}

	if err := Verify(r); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
}

func TestEncodeDecodeVerifies(t *testing.T) {
	r := recordRun(t, 23)

	data, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if decoded.Hash != r.Hash || len(decoded.Frames) != len(r.Frames) || decoded.Config != r.Config {
		t.Error("decoded replay differs from the original")
	}
	if err := Verify(decoded); err != nil {
		t.Errorf("Verify(decoded) = %v", err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	r := recordRun(t, 5)
	r.Seed++

	err := Verify(r)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(tampered) = %v, want ErrMismatch", err)
	}
}

func TestEmptyReplay(t *testing.T) {
	if _, err := Simulate(&Replay{}); !errors.Is(err, ErrEmpty) {
		t.Errorf("Simulate(empty) = %v, want ErrEmpty", err)
	}
	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("Decode(garbage) should fail")
	}
}

func TestPlaybackAdvanceTo(t *testing.T) {
	r := recordRun(t, 8)
	p, err := NewPlayback(r, nil)
	if err != nil {
		t.Fatal(err)
	}

	p.AdvanceTo(0)
	if p.Done() && len(r.Frames) > 1 {
		t.Fatal("AdvanceTo(0) consumed everything")
	}
	if p.Game().State() != picklecatch.StatePlaying {
		t.Errorf("state = %s during playback", p.Game().State())
	}

	p.AdvanceTo(r.DurationMs + 1)
	if !p.Done() {
		t.Error("playback should be done after the full duration")
	}
	if p.Game().State() != picklecatch.StateGameOver || p.Game().Score() != r.Score {
		t.Errorf("final state = %s score %d, want gameOver %d", p.Game().State(), p.Game().Score(), r.Score)
	}
}

func TestRecorderIgnoresIdleTicks(t *testing.T) {
	g := picklecatch.New(config.Default(), core.Size{W: 600, H: 600}, 1, nil)
	rec := NewRecorder()
	for i := 0; i < 10; i++ {
		in := core.InputSample{DeltaX: 5}
		if r := rec.Observe(g, float64(i*16), in, g.Tick(float64(i*16), in)); r != nil {
			t.Fatal("no replay expected before a run starts")
		}
	}
	if rec.Recording() {
		t.Error("recorder should stay idle in welcome")
	}
}
