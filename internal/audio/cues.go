package audio

import "github.com/vovakirdan/milkrun/internal/runstate"

// Cue names a sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueCow
	CueGolden
	CueJoker
	CuePowerup
	CueEMP
	CueShield
	CueHit
	CueRevive
	CueCounterReady
	CueCounter
	CueWave
	CueGameOver
)

var cueNames = [...]string{
	CueNone:         "none",
	CueCow:          "cow",
	CueGolden:       "golden",
	CueJoker:        "joker",
	CuePowerup:      "powerup",
	CueEMP:          "emp",
	CueShield:       "shield",
	CueHit:          "hit",
	CueRevive:       "revive",
	CueCounterReady: "counter-ready",
	CueCounter:      "counter",
	CueWave:         "wave",
	CueGameOver:     "game-over",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// CueFor maps a run event to the sound it should make.
// Bookkeeping events (score, milk, streak, tank totals) are silent.
func CueFor(ev runstate.Event) Cue {
	switch e := ev.(type) {
	case runstate.CowCollected:
		switch {
		case e.Joker:
			return CueJoker
		case e.Golden:
			return CueGolden
		}
		return CueCow
	case runstate.PowerupCollected:
		if e.Kind == "emp" {
			return CueEMP
		}
		return CuePowerup
	case runstate.ShieldAbsorbed:
		return CueShield
	case runstate.PlayerHit:
		return CueHit
	case runstate.Revived:
		return CueRevive
	case runstate.CounterAttackReady:
		return CueCounterReady
	case runstate.CounterAttackTriggered:
		return CueCounter
	case runstate.WaveChanged:
		return CueWave
	case runstate.GameOver:
		return CueGameOver
	}
	return CueNone
}

// tracker turns an event stream into cues. The first WaveChanged of a run
// is the baseline published at start and stays silent.
type tracker struct {
	wave int
}

func (t *tracker) next(ev runstate.Event) Cue {
	if w, ok := ev.(runstate.WaveChanged); ok {
		prev := t.wave
		t.wave = w.Wave
		if prev == 0 || w.Wave <= prev {
			return CueNone
		}
	}
	return CueFor(ev)
}
