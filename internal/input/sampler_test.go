package input

import (
	"sync"
	"testing"

	"github.com/vovakirdan/picklecatch/internal/core"
)

func TestSamplerCoalesces(t *testing.T) {
	s := NewSampler()
	s.AddDelta(3)
	s.AddDelta(-1.5)
	s.SetAbsolute(100)
	s.SetAbsolute(120)
	s.Trigger(core.TriggerStart)
	s.Trigger(core.TriggerNone)
	s.Trigger(core.TriggerRestart)
	s.Resize(300, 200)
	s.Resize(640, 480)

	got := s.Sample()
	if got.DeltaX != 1.5 {
		t.Errorf("DeltaX = %v, want 1.5", got.DeltaX)
	}
	if !got.HasAbsolute || got.Absolute != 120 {
		t.Errorf("Absolute = %v (%v), want 120", got.Absolute, got.HasAbsolute)
	}
	if len(got.Triggers) != 2 || got.Triggers[0] != core.TriggerStart || got.Triggers[1] != core.TriggerRestart {
		t.Errorf("Triggers = %v, want [start restart]", got.Triggers)
	}
	if got.Resize == nil || got.Resize.W != 640 || got.Resize.H != 480 {
		t.Errorf("Resize = %+v, want 640x480", got.Resize)
	}

	empty := s.Sample()
	if empty.DeltaX != 0 || empty.HasAbsolute || len(empty.Triggers) != 0 || empty.Resize != nil {
		t.Errorf("second sample should be empty, got %+v", empty)
	}
}

func TestSamplerKeyLevel(t *testing.T) {
	s := NewSampler()
	s.SetKey(true)

	for i := 0; i < 3; i++ {
		if !s.Sample().Autopilot {
			t.Fatalf("sample %d: key should stay held", i)
		}
	}

	s.SetKey(false)
	if s.Sample().Autopilot {
		t.Error("key should be released")
	}

	if !s.ToggleKey() || !s.KeyHeld() {
		t.Error("toggle should hold the key")
	}
	if s.ToggleKey() {
		t.Error("second toggle should release the key")
	}
}

func TestSamplerConcurrent(t *testing.T) {
	s := NewSampler()
	var wg sync.WaitGroup
	const producers, perProducer = 8, 500

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.AddDelta(1)
				s.Trigger(core.TriggerStart)
			}
		}()
	}

	var total float64
	var triggers int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			in := s.Sample()
			total += in.DeltaX
			triggers += len(in.Triggers)
		}
	}()

	wg.Wait()
	<-done
	in := s.Sample()
	total += in.DeltaX
	triggers += len(in.Triggers)

	if total != producers*perProducer {
		t.Errorf("summed delta = %v, want %d", total, producers*perProducer)
	}
	if triggers != producers*perProducer {
		t.Errorf("delivered triggers = %d, want %d", triggers, producers*perProducer)
	}
}
