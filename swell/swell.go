// Package swell is the demo wave simulation feeding the foam
// pipeline. Wave crests travel down the screen, break at a randomized
// depth and deposit foam bands; the band list is owned and aged here,
// while the foam package only ever reads it.
package swell

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/swash/foam"
)

// Params configures the simulation.
type Params struct {
	ScreenW, ScreenH float32
	MaxCrests        int
	SpawnInterval    float64 // seconds between crest spawns
	MinSpeed         float32 // px/s
	MaxSpeed         float32
	BreakYMin        float32 // fraction of screen height
	BreakYMax        float32
	BandDecay        float32 // opacity lost per second
	MaxBands         int
	NoiseScale       float64
	NoiseCutoff      float64
}

// System owns the crest entities and the deposited foam bands.
type System struct {
	world  *ecs.World
	mapper *ecs.Map2[Crest, Kinematics]
	filter *ecs.Filter2[Crest, Kinematics]

	noise opensimplex.Noise
	rng   *rand.Rand
	p     Params

	bands      []foam.Band
	time       float64
	spawnClock float64
	crestCount int
}

// New creates a wave simulation.
func New(p Params, seed int64) *System {
	world := ecs.NewWorld()
	return &System{
		world:  world,
		mapper: ecs.NewMap2[Crest, Kinematics](world),
		filter: ecs.NewFilter2[Crest, Kinematics](world),
		noise:  opensimplex.NewNormalized(seed),
		rng:    rand.New(rand.NewSource(seed)),
		p:      p,
		bands:  make([]foam.Band, 0, p.MaxBands),
	}
}

// Time returns the simulation clock in seconds.
func (s *System) Time() float64 { return s.time }

// Bands returns the current foam band history. Callers must treat the
// slice as read-only; it is re-sliced on the next Step.
func (s *System) Bands() []foam.Band { return s.bands }

// CrestCount returns the number of live crests.
func (s *System) CrestCount() int { return s.crestCount }

// Step advances the simulation by dt seconds: spawns crests, moves
// them shoreward, breaks them into foam bands, and decays the band
// history.
func (s *System) Step(dt float64) {
	s.time += dt

	s.spawnClock += dt
	for s.spawnClock >= s.p.SpawnInterval && s.crestCount < s.p.MaxCrests {
		s.spawnClock -= s.p.SpawnInterval
		s.spawnCrest()
	}

	// First pass: advance and collect broken crests (query iteration
	// must complete before removal).
	var broken []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		crest, kin := query.Get()
		kin.Y += kin.Speed * float32(dt)
		if kin.Y >= crest.BreakY {
			s.depositBand(crest, kin)
			broken = append(broken, query.Entity())
		}
	}
	for _, entity := range broken {
		s.mapper.Remove(entity)
		s.crestCount--
	}

	s.decayBands(float32(dt))
}

// spawnCrest creates a new crest entity above the top of the screen.
func (s *System) spawnCrest() {
	crest := Crest{
		Amplitude: 0.6 + s.rng.Float32()*0.4,
		BreakY:    (s.p.BreakYMin + s.rng.Float32()*(s.p.BreakYMax-s.p.BreakYMin)) * s.p.ScreenH,
		Phase:     s.rng.Float64() * 100,
	}
	kin := Kinematics{
		Y:     -10,
		Speed: s.p.MinSpeed + s.rng.Float32()*(s.p.MaxSpeed-s.p.MinSpeed),
	}
	s.mapper.NewEntity(&crest, &kin)
	s.crestCount++
}

// depositBand samples the noise field along the crest and turns the
// stretches above the cutoff into foam segments.
func (s *System) depositBand(crest *Crest, kin *Kinematics) {
	const samples = 64

	band := foam.Band{
		Y:         kin.Y,
		Opacity:   1,
		SpawnTime: s.time,
	}

	open := false
	var start float32
	var peak float64
	for i := 0; i <= samples; i++ {
		x := float32(i) / samples
		n := 0.0
		if i < samples {
			n = s.noise.Eval2(float64(x)*s.p.NoiseScale, crest.Phase+s.time*0.1)
		}
		above := n > s.p.NoiseCutoff
		switch {
		case above && !open:
			open = true
			start = x
			peak = n
		case above && open:
			if n > peak {
				peak = n
			}
		case !above && open:
			open = false
			intensity := crest.Amplitude * float32((peak-s.p.NoiseCutoff)/(1-s.p.NoiseCutoff))
			band.Segments = append(band.Segments, foam.Segment{
				StartX:    start,
				EndX:      x,
				Intensity: clamp01(intensity),
			})
		}
	}

	if len(band.Segments) == 0 {
		return
	}
	s.bands = append(s.bands, band)
	if len(s.bands) > s.p.MaxBands {
		s.bands = s.bands[len(s.bands)-s.p.MaxBands:]
	}
}

// decayBands ages the band history and drops dissipated bands.
func (s *System) decayBands(dt float32) {
	alive := 0
	for i := range s.bands {
		s.bands[i].Opacity -= s.p.BandDecay * dt
		if s.bands[i].Opacity <= 0 {
			continue
		}
		s.bands[alive] = s.bands[i]
		alive++
	}
	s.bands = s.bands[:alive]
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
