package picklecatch

import "math"

// Snapshot contains the complete simulation state for replay verification.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	RunTicks    uint64
	Run         int
	State       string
	Score       int
	ObjectSpeed float64
	Autopilot   bool
	Captured    bool

	CanvasW, CanvasH float64
	CatcherX         float64
	CatcherW         float64

	PowerUpActive bool
	PowerUpEndsAt float64

	RequiredDelay   float64
	LastBurstStart  float64
	PendingBurst    int
	NextBurstMember float64
	NextGoldenCheck float64

	// Each object is 5 values: X, Y, Angle, RotationSpeed, Golden (0/1)
	ObjectCount int
	ObjectData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	st := &g.st

	data := make([]float64, 0, len(st.Objects)*5)
	for _, o := range st.Objects {
		golden := 0.0
		if o.Golden {
			golden = 1
		}
		data = append(data, o.X, o.Y, o.Angle, o.RotationSpeed, golden)
	}

	return Snapshot{
		RunTicks:    g.runTicks,
		Run:         st.Session.Run,
		State:       string(st.Session.State),
		Score:       st.Session.Score,
		ObjectSpeed: st.Session.ObjectSpeed,
		Autopilot:   st.Session.Autopilot,
		Captured:    g.captured,

		CanvasW:  st.Canvas.W,
		CanvasH:  st.Canvas.H,
		CatcherX: st.Catcher.CenterX,
		CatcherW: st.Catcher.Width,

		PowerUpActive: st.PowerUp.Active,
		PowerUpEndsAt: st.PowerUp.EndsAt,

		RequiredDelay:   st.Schedule.RequiredDelay,
		LastBurstStart:  st.Schedule.LastBurstStart,
		PendingBurst:    st.Schedule.PendingBurst,
		NextBurstMember: st.Schedule.NextBurstMember,
		NextGoldenCheck: st.Schedule.NextGoldenCheck,

		ObjectCount: len(st.Objects),
		ObjectData:  data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// The run counter is left out so a replayed run hashes like the original.
func (snap *Snapshot) Hash() uint64 {
	h := snap.RunTicks
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PendingBurst) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ObjectCount)  //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Autopilot)
	h = h*31 + boolBit(snap.Captured)
	h = h*31 + boolBit(snap.PowerUpActive)

	for _, v := range []float64{
		snap.ObjectSpeed,
		snap.CanvasW, snap.CanvasH,
		snap.CatcherX, snap.CatcherW,
		snap.PowerUpEndsAt,
		snap.RequiredDelay, snap.LastBurstStart, snap.NextBurstMember, snap.NextGoldenCheck,
	} {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.ObjectData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
