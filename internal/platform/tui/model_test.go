package tui

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/picklecatch/internal/config"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/games/picklecatch"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

type soundLog struct {
	kinds []picklecatch.SoundKind
}

func (s *soundLog) PlaySound(k picklecatch.SoundKind) {
	s.kinds = append(s.kinds, k)
}

func newTestModel(t *testing.T, sounds SoundPlayer) Model {
	t.Helper()
	m := NewModel(Options{
		Game:    config.Default(),
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 7},
		Sounds:  sounds,
		Record:  true,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	return next.(Model)
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestActionTrigger(t *testing.T) {
	tests := []struct {
		state picklecatch.State
		want  core.Trigger
	}{
		{picklecatch.StateWelcome, core.TriggerStart},
		{picklecatch.StatePlaying, core.TriggerNone},
		{picklecatch.StateGameOver, core.TriggerRestart},
	}
	for _, tt := range tests {
		if got := actionTrigger(tt.state); got != tt.want {
			t.Errorf("actionTrigger(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestSpaceStartsRunAndCapturesMouse(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()

	m = step(t, m, TickMsg(start))
	if m.game.State() != picklecatch.StateWelcome {
		t.Fatalf("state = %s, want welcome", m.game.State())
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	next, cmd := m.Update(TickMsg(start.Add(16 * time.Millisecond)))
	m = next.(Model)

	if m.game.State() != picklecatch.StatePlaying {
		t.Fatalf("state = %s, want playing", m.game.State())
	}
	if !m.game.Captured() {
		t.Error("run start should capture the pointer")
	}
	if cmd == nil {
		t.Error("expected tick and mouse commands")
	}
	if len(m.host.pending) != 0 {
		t.Errorf("host commands not drained: %d", len(m.host.pending))
	}
}

func TestResizeSetsCanvasAboveFooter(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, TickMsg(time.Now()))

	if m.screen.Width() != 60 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 60x29", m.screen.Width(), m.screen.Height())
	}
	want := core.CanvasFromScreen(60, 29)
	if got := m.game.Canvas(); got != want {
		t.Errorf("canvas = %+v, want %+v", got, want)
	}
}

func TestArrowKeysMoveCatcher(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg(start))
	before := m.game.Snapshot().CatcherX

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = step(t, m, TickMsg(start.Add(16*time.Millisecond)))
	after := m.game.Snapshot().CatcherX

	if after != before-moveStep {
		t.Errorf("catcher x = %v, want %v", after, before-moveStep)
	}
}

func TestAutopilotKeyLatches(t *testing.T) {
	m := newTestModel(t, nil)
	c := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}

	m = step(t, m, c)
	if m.sampler.KeyHeld() {
		t.Fatal("c on the welcome screen should be ignored")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, c)
	if !m.sampler.KeyHeld() {
		t.Error("c should engage autopilot")
	}
	m = step(t, m, c)
	if m.sampler.KeyHeld() {
		t.Error("second c should release autopilot")
	}
}

func TestMouseSetsAbsolutePosition(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = step(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, TickMsg(start))
	if m.game.State() != picklecatch.StatePlaying {
		t.Fatalf("click should start the run, state = %s", m.game.State())
	}

	m = step(t, m, tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionMotion})
	m = step(t, m, TickMsg(start.Add(16*time.Millisecond)))
	if got, want := m.game.Snapshot().CatcherX, 40.5*core.CellW; got != want {
		t.Errorf("catcher x = %v, want %v", got, want)
	}
}

// playUntilMiss starts a run with the catcher parked at the far left and
// ticks until the run ends.
func playUntilMiss(t *testing.T, m Model) Model {
	t.Helper()
	start := time.Now()
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for i := 0; i < 60*60 && m.lastReplay == nil; i++ {
		m = step(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
		m = step(t, m, TickMsg(start.Add(time.Duration(i)*16*time.Millisecond)))
	}
	if m.lastReplay == nil {
		t.Fatal("no run ended within a minute of play")
	}
	return m
}

func TestRunEndsWithRecordedReplay(t *testing.T) {
	sounds := &soundLog{}
	m := playUntilMiss(t, newTestModel(t, sounds))

	if m.game.State() != picklecatch.StateGameOver {
		t.Errorf("state = %s, want gameOver", m.game.State())
	}
	if !strings.Contains(m.status, "not saved") {
		t.Errorf("status = %q, want in-memory notice", m.status)
	}
	if !slices.Contains(sounds.kinds, picklecatch.SoundDoomsday) {
		t.Errorf("sounds = %v, want doomsday", sounds.kinds)
	}
}

func TestRenderScreen(t *testing.T) {
	scr := core.NewScreen(10, 3)
	scr.DrawText(0, 1, "Score: 1", core.ColorText)

	out := RenderScreen(scr)
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(out, "Score: 1") {
		t.Error("text run missing from output")
	}
}

func TestHostDrain(t *testing.T) {
	sounds := &soundLog{}
	h := newTermHost(sounds)
	h.RequestExclusiveInput()
	h.ReleaseExclusiveInput()
	h.PlaySound(picklecatch.SoundPop)

	if cmds := h.drain(); len(cmds) != 2 {
		t.Errorf("drain() = %d commands, want 2", len(cmds))
	}
	if cmds := h.drain(); len(cmds) != 0 {
		t.Errorf("second drain() = %d commands, want 0", len(cmds))
	}
	if len(sounds.kinds) != 1 {
		t.Errorf("sounds = %v", sounds.kinds)
	}

	// A host without a player stays silent.
	newTermHost(nil).PlaySound(picklecatch.SoundPop)
}

func TestDifficultyMenu(t *testing.T) {
	m := NewDifficultyModel(80, 24)
	if got := m.presets[m.cursor]; got != config.DifficultyNormal {
		t.Fatalf("initial cursor on %s, want normal", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	dm := next.(DifficultyModel)
	if dm.Selected() == nil || *dm.Selected() != config.DifficultyHard {
		t.Errorf("selected = %v, want hard", dm.Selected())
	}
	if cmd == nil {
		t.Error("selection should quit the selector")
	}

	next, _ = NewDifficultyModel(80, 24).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(DifficultyModel).Selected() != nil {
		t.Error("esc should leave nothing selected")
	}
}

func TestWatchPlaysRecordedRun(t *testing.T) {
	r := playUntilMiss(t, newTestModel(t, nil)).lastReplay

	sounds := &soundLog{}
	w, err := NewWatchModel(r, sounds, 60, 30, 60)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}
	watch := func(msg tea.Msg) {
		t.Helper()
		next, _ := w.Update(msg)
		w = next.(WatchModel)
	}

	start := time.Now()
	watch(TickMsg(start))
	watch(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	watch(TickMsg(start.Add(time.Hour)))
	if w.elapsed != 0 || w.playback.Done() {
		t.Fatalf("paused playback advanced to %vms", w.elapsed)
	}
	if !strings.Contains(w.View(), "paused") {
		t.Error("status line should say paused")
	}

	watch(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	watch(tea.KeyMsg{Type: tea.KeyTab})
	watch(TickMsg(start.Add(time.Hour + 10*time.Millisecond)))
	if w.elapsed != 20 {
		t.Errorf("elapsed at 2x = %v, want 20", w.elapsed)
	}

	watch(TickMsg(start.Add(3 * time.Hour)))
	if !w.playback.Done() {
		t.Fatal("playback should be done")
	}
	if got := w.playback.Game().Score(); got != r.Score {
		t.Errorf("replayed score = %d, want %d", got, r.Score)
	}
	if !slices.Contains(sounds.kinds, picklecatch.SoundDoomsday) {
		t.Errorf("sounds = %v, want doomsday", sounds.kinds)
	}
	if !strings.Contains(w.View(), "finished") {
		t.Error("status line should say finished")
	}

	watch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if w.elapsed != 0 || w.playback.Done() {
		t.Error("restart should rewind playback")
	}
}

func TestReplayBrowser(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	r := playUntilMiss(t, newTestModel(t, nil)).lastReplay
	if err := store.SaveReplay(r); err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}

	m := NewReplaysModel(store, 80, 24)
	if len(m.replays) != 1 {
		t.Fatalf("loaded %d replays, want 1", len(m.replays))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(ReplaysModel)
	if !strings.HasSuffix(m.status, "verified") {
		t.Errorf("status after verify = %q", m.status)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := next.(ReplaysModel).Selected(); sel == nil || sel.ID != r.ID {
		t.Errorf("selected = %v, want %s", sel, r.ID)
	}
	if cmd == nil {
		t.Error("watching should quit the browser")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(ReplaysModel)
	if len(m.replays) != 0 {
		t.Errorf("%d replays left after delete", len(m.replays))
	}
	if n, err := store.CountReplays(); err != nil || n != 0 {
		t.Errorf("CountReplays() = %d, %v", n, err)
	}
	if !strings.Contains(m.View(), "No replays") {
		t.Error("empty browser should say so")
	}
}

func TestRestartClearsAutopilot(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	c := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = step(t, m, TickMsg(start))
	m = step(t, m, c)

	// Release autopilot and park the catcher left until the run ends.
	m = step(t, m, TickMsg(start.Add(16*time.Millisecond)))
	if !m.game.Session().Autopilot {
		t.Fatal("autopilot should be engaged while playing")
	}
	m = step(t, m, c)
	i := 2
	for ; i < 60*60 && m.game.State() == picklecatch.StatePlaying; i++ {
		m = step(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
		m = step(t, m, TickMsg(start.Add(time.Duration(i)*16*time.Millisecond)))
	}
	if m.game.State() != picklecatch.StateGameOver {
		t.Fatal("no run ended within a minute of play")
	}

	m = step(t, m, c)
	if m.sampler.KeyHeld() {
		t.Error("c on the game over screen should be ignored")
	}

	// Latch autopilot again through the sampler, as a stale key would.
	m.sampler.SetKey(true)
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = step(t, m, TickMsg(start.Add(time.Duration(i)*16*time.Millisecond)))
	if m.game.State() != picklecatch.StatePlaying {
		t.Fatalf("state = %s, want playing", m.game.State())
	}
	if m.game.Session().Autopilot || m.sampler.KeyHeld() {
		t.Error("restart should begin with autopilot off")
	}
}
