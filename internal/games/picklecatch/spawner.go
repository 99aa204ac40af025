package picklecatch

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/picklecatch/internal/config"
)

// SpawnSchedule tracks both spawn cadences as next-eligible timestamps.
type SpawnSchedule struct {
	RequiredDelay   float64
	LastBurstStart  float64
	PendingBurst    int
	NextBurstMember float64
	NextGoldenCheck float64
}

// Spawner decides when and what to spawn. It owns the run's RNG.
type Spawner struct {
	spawn   config.SpawnConfig
	golden  config.GoldenConfig
	objects config.ObjectsConfig
	rng     *rand.Rand
}

// NewSpawner creates a spawner seeded for a run.
func NewSpawner(cfg config.GameConfig, seed int64) *Spawner {
	return &Spawner{
		spawn:   cfg.Spawn,
		golden:  cfg.Golden,
		objects: cfg.Objects,
		rng:     rand.New(rand.NewSource(seed)), //#nosec G404 -- deterministic gameplay RNG
	}
}

// Reseed restarts the random sequence.
func (sp *Spawner) Reseed(seed int64) {
	sp.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- deterministic gameplay RNG
}

// Reset returns a schedule to its initial values relative to now.
func (sp *Spawner) Reset(s *SpawnSchedule, now float64) {
	*s = SpawnSchedule{
		RequiredDelay:   sp.spawn.InitialInterval,
		LastBurstStart:  now,
		NextGoldenCheck: now + sp.golden.CheckInterval,
	}
}

// BurstSize returns how many objects a burst started at this score holds.
func BurstSize(score, pointsPerBurst int) int {
	if pointsPerBurst <= 0 {
		return 1
	}
	return score/pointsPerBurst + 1
}

// NextDelay computes the delay before the next burst from a uniform sample u.
// The random offset is added after flooring the base term, so the result can
// fall below the minimum interval or even below zero.
func NextDelay(cfg config.SpawnConfig, score int, u float64) float64 {
	base := math.Max(cfg.MinInterval, cfg.InitialInterval-float64(score)*cfg.DecreasePerPoint)
	return base + (u-0.5)*2*cfg.Randomness
}

// Update runs both cadences for one tick and returns the objects to add.
func (sp *Spawner) Update(s *SpawnSchedule, score int, canvasW, now float64) []FallingObject {
	var spawned []FallingObject

	// Normal burst cadence.
	if now-s.LastBurstStart > s.RequiredDelay && s.PendingBurst == 0 {
		s.PendingBurst = BurstSize(score, sp.spawn.PointsPerBurst)
		s.LastBurstStart = now

		spawned = append(spawned, sp.object(canvasW, false))
		s.PendingBurst--
		if s.PendingBurst > 0 {
			s.NextBurstMember = now + sp.gap()
		}

		s.RequiredDelay = NextDelay(sp.spawn, score, sp.rng.Float64())
	}

	// Remaining burst members.
	if s.PendingBurst > 0 && now >= s.NextBurstMember {
		spawned = append(spawned, sp.object(canvasW, false))
		s.PendingBurst--
		if s.PendingBurst > 0 {
			s.NextBurstMember = now + sp.gap()
		}
	}

	// Golden cadence, independent of bursts.
	if now >= s.NextGoldenCheck {
		if sp.rng.Float64() < sp.golden.Chance {
			spawned = append(spawned, sp.object(canvasW, true))
		}
		s.NextGoldenCheck = now + sp.golden.CheckInterval
	}

	return spawned
}

func (sp *Spawner) object(canvasW float64, golden bool) FallingObject {
	ux := sp.rng.Float64()
	uAngle := sp.rng.Float64()
	uRot := sp.rng.Float64()
	return newObject(ux, uAngle, uRot, canvasW, sp.objects, golden)
}

func (sp *Spawner) gap() float64 {
	return sp.spawn.BurstGapMin + sp.rng.Float64()*(sp.spawn.BurstGapMax-sp.spawn.BurstGapMin)
}
