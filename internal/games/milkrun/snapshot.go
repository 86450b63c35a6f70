package milkrun

import (
	"math"

	"github.com/vovakirdan/milkrun/internal/runstate"
)

// Snapshot is an immutable copy of the world for rendering and tests.
// Every collection is copied; mutating a snapshot never touches the engine.
type Snapshot struct {
	Width, Height float64
	Skin          string

	Player    Player
	Cows      []Cow
	Joker     JokerCow
	JokerLive bool
	Enemies   []Enemy
	Missiles  []Missile
	Powerups  []Powerup
	Particles []Particle

	EMP     AreaBlast
	Counter AreaBlast

	DoubleScore TimedEffect
	TimeFreeze  TimedEffect
	GoldenBonus int

	Wave       int
	Background int // visible background id
	Elapsed    float64
	Run        runstate.State
}

// Snapshot copies the current world.
func (e *Engine) Snapshot() Snapshot {
	w := e.world
	s := Snapshot{
		Width:       w.Bounds.Width(),
		Height:      w.Bounds.Height(),
		Skin:        e.ext.Loadout.Skin,
		Player:      w.Player,
		Cows:        append([]Cow(nil), w.Cows...),
		Enemies:     append([]Enemy(nil), w.Enemies...),
		Missiles:    append([]Missile(nil), w.Missiles...),
		Powerups:    append([]Powerup(nil), w.Powerups...),
		Particles:   append([]Particle(nil), w.Particles...),
		EMP:         w.EMP,
		Counter:     w.Counter,
		DoubleScore: w.DoubleScore,
		TimeFreeze:  w.TimeFreeze,
		GoldenBonus: w.GoldenBonus,
		Wave:        w.Wave,
		Background:  w.Background.Visible(),
		Elapsed:     w.Elapsed,
		Run:         e.run,
	}
	if j, ok := w.Joker.Get(); ok {
		s.Joker = *j
		s.JokerLive = true
	}
	return s
}

func hashF(h uint64, v float64) uint64 {
	return h*31 + math.Float64bits(v)
}

func hashI(h uint64, v int) uint64 {
	return h*31 + uint64(v) //#nosec G115 -- hash computation
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Particles are cosmetic and left out.
func (s *Snapshot) Hash() uint64 {
	h := hashF(0, s.Elapsed)
	h = hashI(h, s.Wave)
	h = hashI(h, s.Run.Score)
	h = hashI(h, s.Run.Milk)
	h = hashI(h, s.Run.Lives)
	h = hashI(h, s.Run.Streak)
	h = hashF(h, s.Player.Pos.X)
	h = hashF(h, s.Player.Pos.Y)

	for _, c := range s.Cows {
		h = hashI(h, c.ID)
		h = hashF(h, c.Pos.X)
		h = hashF(h, c.Pos.Y)
	}
	for _, en := range s.Enemies {
		h = hashI(h, en.ID)
		h = hashF(h, en.Pos.X)
		h = hashF(h, en.Pos.Y)
	}
	for _, m := range s.Missiles {
		h = hashI(h, m.ID)
		h = hashF(h, m.Pos.X)
		h = hashF(h, m.Pos.Y)
	}
	for _, pu := range s.Powerups {
		h = hashI(h, pu.ID)
		h = hashI(h, int(pu.Kind))
	}
	if s.JokerLive {
		h = hashF(h, s.Joker.Pos.X)
		h = hashF(h, s.Joker.Pos.Y)
	}
	return h
}
