package picklecatch

// advanceObjects moves every live object one tick and resolves misses and
// catches, producing a new live set. A miss is checked before a catch.
// It reports whether a power-up was activated.
func (g *Game) advanceObjects(now float64) bool {
	st := &g.st
	radius := g.cfg.Objects.Radius
	effective := st.EffectiveWidth(g.cfg.PowerUp)
	activated := false

	live := make([]FallingObject, 0, len(st.Objects))
	for _, o := range st.Objects {
		o.Advance(st.Session.ObjectSpeed)

		switch {
		case o.Y-radius > st.Canvas.H:
			g.miss(now, o)
		case st.Catcher.Overlaps(o, radius, effective):
			if g.catch(now, o) {
				activated = true
			}
		default:
			live = append(live, o)
		}
	}
	st.Objects = live

	return activated
}

func (g *Game) miss(now float64, o FallingObject) {
	st := &g.st
	g.emit(Event{Kind: EventMissed, At: now, Golden: o.Golden, Score: st.Session.Score})

	if st.Session.State != StatePlaying {
		return
	}
	st.Session.State = StateGameOver
	g.playSound(now, SoundDoomsday)
	g.releaseCapture(now)
	g.emit(Event{Kind: EventGameOver, At: now, Score: st.Session.Score})
}

// catch applies a successful catch and reports whether it started a power-up.
func (g *Game) catch(now float64, o FallingObject) bool {
	st := &g.st

	if o.Golden {
		st.PowerUp.Activate(now, g.cfg.PowerUp.Duration)
		g.emit(Event{Kind: EventCaught, At: now, Golden: true, Score: st.Session.Score})
		g.emit(Event{Kind: EventPowerUpStarted, At: now, Score: st.Session.Score})
		g.playSound(now, SoundGoldenCatch)
		return true
	}

	st.Session.Score++
	st.Session.ObjectSpeed += g.cfg.Objects.SpeedPerCatch
	g.emit(Event{Kind: EventCaught, At: now, Score: st.Session.Score})
	g.playSound(now, SoundSplash)
	return false
}
