package runstate

// Event is one change produced by the simulation during a tick.
// Events carry absolute values where possible so a consumer that misses
// one still converges on the next.
type Event interface {
	apply(s *State)
}

// State is the reduced, externally owned record of a run.
type State struct {
	Score              int
	Milk               int // milk earned this run
	Lives              int
	Wave               int
	Streak             int
	CowsCollected      int
	TanksDestroyed     int
	CounterAttackReady bool
	ReviveUsed         bool
	GameOver           bool
}

// Apply folds a single event into s.
func Apply(s *State, ev Event) {
	if ev != nil {
		ev.apply(s)
	}
}

// ScoreChanged reports the new score and the amount just awarded.
type ScoreChanged struct {
	Score int
	Delta int
}

func (e ScoreChanged) apply(s *State) { s.Score = e.Score }

// MilkChanged reports the new milk total for the run.
type MilkChanged struct {
	Milk  int
	Delta int
}

func (e MilkChanged) apply(s *State) { s.Milk = e.Milk }

// LivesChanged reports the remaining lives.
type LivesChanged struct {
	Lives int
}

func (e LivesChanged) apply(s *State) { s.Lives = e.Lives }

// WaveChanged reports a wave advance.
type WaveChanged struct {
	Wave int
}

func (e WaveChanged) apply(s *State) { s.Wave = e.Wave }

// StreakChanged reports the collection streak.
type StreakChanged struct {
	Streak int
}

func (e StreakChanged) apply(s *State) { s.Streak = e.Streak }

// CowCollected reports a pickup. Total is the run's collected count.
type CowCollected struct {
	Golden bool
	Joker  bool
	Total  int
}

func (e CowCollected) apply(s *State) { s.CowsCollected = e.Total }

// TanksDestroyed reports turrets destroyed by the player's effects or by missiles.
type TanksDestroyed struct {
	Count int
	Total int
}

func (e TanksDestroyed) apply(s *State) { s.TanksDestroyed = e.Total }

// CounterAttackReady is sent when the streak arms the counter-attack.
type CounterAttackReady struct{}

func (CounterAttackReady) apply(s *State) { s.CounterAttackReady = true }

// CounterAttackTriggered is sent when the armed counter-attack fires.
type CounterAttackTriggered struct {
	Destroyed int
}

func (CounterAttackTriggered) apply(*State) {}

// CounterAttackReset is sent when readiness is cleared, by firing or by damage.
type CounterAttackReset struct{}

func (CounterAttackReset) apply(s *State) { s.CounterAttackReady = false }

// Revived is sent when a lethal hit was converted into a revive.
// MilkLost is the amount deducted from the run's milk.
type Revived struct {
	MilkLost int
}

func (Revived) apply(s *State) { s.ReviveUsed = true }

// PowerupCollected reports a powerup pickup by kind name.
type PowerupCollected struct {
	Kind string
}

func (PowerupCollected) apply(*State) {}

// ShieldAbsorbed is sent when the shield blocks a missile.
type ShieldAbsorbed struct{}

func (ShieldAbsorbed) apply(*State) {}

// PlayerHit is sent when a missile costs the player a life.
type PlayerHit struct{}

func (PlayerHit) apply(*State) {}

// GameOver is sent once when the run ends.
type GameOver struct {
	Score int
	Wave  int
}

func (GameOver) apply(s *State) { s.GameOver = true }
