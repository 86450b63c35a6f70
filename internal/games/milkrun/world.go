package milkrun

import (
	"github.com/vovakirdan/milkrun/internal/core"
)

// Player is the craft controlled by the user.
type Player struct {
	Pos      core.Vec2
	Width    float64
	Height   float64
	Speed    float64
	BeamSize float64 // light beam diameter; pickups happen inside half of it

	Invincible  TimedEffect
	Shield      TimedEffect
	TractorBeam TimedEffect
	Milkstorm   TimedEffect

	wasMoving bool
}

// CowState is the lifecycle stage of a cow.
type CowState int

const (
	CowEntering CowState = iota
	CowWandering
	CowLeaving
)

// String returns the state name.
func (s CowState) String() string {
	switch s {
	case CowEntering:
		return "entering"
	case CowWandering:
		return "wandering"
	case CowLeaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// Cow is a regular or golden collectible.
type Cow struct {
	ID     int
	Pos    core.Vec2
	Vel    core.Vec2
	Target core.Vec2
	State  CowState
	Golden bool

	Age         float64 // ms alive
	WanderTimer float64 // ms since the last target pick
	WanderAfter float64 // ms until the next pick
}

// JokerCow is the rare, fleeing, missile-proof collectible.
type JokerCow struct {
	Pos        core.Vec2
	Vel        core.Vec2
	Life       float64 // ms left before it escapes
	Escape     TimedEffect
	SwirlAngle float64
}

// JokerSlot holds at most one joker. The zero value is empty.
type JokerSlot struct {
	cow   JokerCow
	alive bool
}

// Get returns the joker and whether one is alive.
func (s *JokerSlot) Get() (*JokerCow, bool) {
	if !s.alive {
		return nil, false
	}
	return &s.cow, true
}

// Alive reports whether a joker is present.
func (s JokerSlot) Alive() bool {
	return s.alive
}

// Put places a joker in the slot.
func (s *JokerSlot) Put(j JokerCow) {
	s.cow = j
	s.alive = true
}

// Clear empties the slot.
func (s *JokerSlot) Clear() {
	s.cow = JokerCow{}
	s.alive = false
}

// Enemy is a pursuing turret.
type Enemy struct {
	ID         int
	Pos        core.Vec2
	Speed      float64
	ShootTimer float64
	ShootDelay float64
}

// Missile is a homing projectile fired by an enemy.
type Missile struct {
	ID       int
	Pos      core.Vec2
	Vel      core.Vec2
	Life     float64 // ms
	SpawnAt  float64 // simulation clock at launch, ms
	SourceID int
}

// Powerup is a pickup lying on the field.
type Powerup struct {
	ID   int
	Pos  core.Vec2
	Kind PowerupKind
	Life float64 // ms
}

// Particle is a cosmetic spark.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64
	Max   float64
	Color core.Color
	Glyph rune
}

// BackgroundState tracks the committed background and a running flicker transition.
type BackgroundState struct {
	Current int

	Transitioning bool
	Old, New      int
	ShowOld       bool
	FlickersLeft  int
	flickerTimer  float64
}

// Visible returns the background id to draw this frame.
func (b BackgroundState) Visible() int {
	if !b.Transitioning {
		return b.Current
	}
	if b.ShowOld {
		return b.Old
	}
	return b.New
}

// World aggregates every entity of one run. The engine owns it exclusively.
type World struct {
	Bounds core.Bounds

	Player    Player
	Cows      []Cow
	Joker     JokerSlot
	Enemies   []Enemy
	Missiles  []Missile
	Powerups  []Powerup
	Particles []Particle

	EMP     AreaBlast
	Counter AreaBlast

	DoubleScore TimedEffect
	TimeFreeze  TimedEffect
	GoldenBonus int // forced golden spawns left

	Wave       int
	Background BackgroundState

	Elapsed   float64 // simulation clock, ms
	DeltaTime float64 // clamped dt of the current tick, ms

	waveTimer    float64
	cowTimer     float64
	enemyTimer   float64
	powerupTimer float64
	jokerWaves   int
	nextID       int
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// Teardown releases every entity collection.
func (w *World) Teardown() {
	w.Cows = nil
	w.Joker.Clear()
	w.Enemies = nil
	w.Missiles = nil
	w.Powerups = nil
	w.Particles = nil
	w.EMP = AreaBlast{}
	w.Counter = AreaBlast{}
}
