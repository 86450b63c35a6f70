// Package runstate holds the state that lives outside the simulation:
// the equipped loadout and run flags the engine reads at the start of a tick,
// and the score/milk/lives record the engine writes back through events.
package runstate

// Defaults applied when a loadout leaves a field unset.
const (
	DefaultPlayerSize    = 55.0
	DefaultSpeed         = 4.0
	DefaultBeamSize      = 60.0
	DefaultMilkBonus     = 1.0
	DefaultStartingLives = 3
)

// Loadout is the equipped ship record. Zero values mean "not set".
type Loadout struct {
	Skin                       string  `yaml:"skin"`
	BasePlayerWidth            float64 `yaml:"base_player_width"`
	BasePlayerHeight           float64 `yaml:"base_player_height"`
	SpeedModifier              float64 `yaml:"speed_modifier"`
	TractorBeamSize            float64 `yaml:"tractor_beam_size"`
	MilkBonus                  float64 `yaml:"milk_bonus"`
	ReviveOnDeath              bool    `yaml:"revive_on_death"`
	ShieldDurationBonus        float64 `yaml:"shield_duration_bonus"`        // seconds
	InvincibilityDurationBonus float64 `yaml:"invincibility_duration_bonus"` // seconds
	StartingLives              int     `yaml:"starting_lives"`
	BonusStartingLife          bool    `yaml:"bonus_starting_life"`
}

// Resolved returns a copy with every unset numeric field replaced by its default.
// Negative values are treated as unset.
func (l Loadout) Resolved() Loadout {
	if l.BasePlayerWidth <= 0 {
		l.BasePlayerWidth = DefaultPlayerSize
	}
	if l.BasePlayerHeight <= 0 {
		l.BasePlayerHeight = DefaultPlayerSize
	}
	if l.SpeedModifier <= 0 {
		l.SpeedModifier = 1
	}
	if l.TractorBeamSize <= 0 {
		l.TractorBeamSize = DefaultBeamSize
	}
	if l.MilkBonus <= 0 {
		l.MilkBonus = DefaultMilkBonus
	}
	if l.ShieldDurationBonus < 0 {
		l.ShieldDurationBonus = 0
	}
	if l.InvincibilityDurationBonus < 0 {
		l.InvincibilityDurationBonus = 0
	}
	if l.StartingLives <= 0 {
		l.StartingLives = DefaultStartingLives
	}
	return l
}

// Speed returns the per-tick player speed in pixels.
func (l Loadout) Speed() float64 {
	return DefaultSpeed * l.Resolved().SpeedModifier
}

// InitialLives returns the lives a run starts with, including the
// ship's bonus life and a one-shot bonus life flag.
func (l Loadout) InitialLives(f Flags) int {
	r := l.Resolved()
	lives := r.StartingLives
	if r.BonusStartingLife {
		lives++
	}
	if f.BonusLife {
		lives++
	}
	return lives
}

// Flags are run-level effects bought before a run and fixed for its duration.
type Flags struct {
	DoubleMilk     bool `yaml:"double_milk"`
	GoldenCowCharm bool `yaml:"golden_cow_charm"`
	AntiGravity    bool `yaml:"anti_gravity"`
	JokerBlessing  bool `yaml:"joker_blessing"`
	LuckyJam       bool `yaml:"lucky_jam"`
	BonusLife      bool `yaml:"bonus_life"`
}

// External is the read-only snapshot the engine takes at the start of a tick.
type External struct {
	Loadout Loadout
	Flags   Flags
}

// Source provides the current external snapshot.
// Implementations must not block; a stale value is acceptable.
type Source interface {
	External() External
}

// Sink receives the events produced by one tick.
// Implementations must not block and must not call back into the engine.
type Sink interface {
	Publish(events []Event)
}

// Static is a Source that always returns the same snapshot.
type Static External

// External implements Source.
func (s Static) External() External {
	return External(s)
}
