package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with an optional linear pitch slide.
type tone struct {
	freq     float64
	slide    float64 // Hz added per second
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone creates a tone of the given shape and duration.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

// NewSweep creates a tone whose pitch slides from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	secs := d.Seconds()
	if secs <= 0 {
		secs = 1
	}
	return &tone{freq: from, slide: (to - from) / secs, length: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1 // #nosec G404 -- audio noise
		}
		samples[i][0] = v
		samples[i][1] = v

		f := t.freq + t.slide*float64(t.position)/float64(t.rate)
		if f < 0 {
			f = 0
		}
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in and out.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with a linear attack and release over d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			gain = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s by a linear gain. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// note is a shaped tone, the building block of every cue.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewTone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Build synthesizes the streamer for a cue at the given gain.
// It returns nil for CueNone.
func Build(c Cue, gain float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueCow:
		s = note(660, 70*time.Millisecond, WaveSquare, rate)
	case CueGolden:
		s = beep.Seq(
			note(880, 60*time.Millisecond, WaveSquare, rate),
			note(1175, 60*time.Millisecond, WaveSquare, rate),
			note(1760, 90*time.Millisecond, WaveSine, rate),
		)
	case CueJoker:
		s = beep.Seq(
			note(523, 60*time.Millisecond, WaveSquare, rate),
			note(659, 60*time.Millisecond, WaveSquare, rate),
			note(784, 60*time.Millisecond, WaveSquare, rate),
			note(1047, 140*time.Millisecond, WaveSine, rate),
		)
	case CuePowerup:
		d := 180 * time.Millisecond
		s = NewEnvelope(NewSweep(400, 1200, d, WaveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	case CueShield:
		s = beep.Mix(
			withVolume(note(220, 160*time.Millisecond, WaveSine, rate), 0.7),
			withVolume(note(440, 160*time.Millisecond, WaveSine, rate), 0.3),
		)
	case CueHit:
		d := 250 * time.Millisecond
		s = NewEnvelope(NewTone(0, d, WaveNoise, rate), d, 2*time.Millisecond, 200*time.Millisecond, rate)
	case CueRevive:
		d := 400 * time.Millisecond
		s = NewEnvelope(NewSweep(200, 900, d, WaveSaw, rate), d, 20*time.Millisecond, 150*time.Millisecond, rate)
	case CueCounterReady:
		s = beep.Seq(
			note(988, 50*time.Millisecond, WaveSine, rate),
			note(988, 50*time.Millisecond, WaveSine, rate),
		)
	case CueCounter, CueEMP:
		d := 350 * time.Millisecond
		s = beep.Mix(
			withVolume(NewEnvelope(NewSweep(300, 60, d, WaveSaw, rate), d, 2*time.Millisecond, 250*time.Millisecond, rate), 0.6),
			withVolume(NewEnvelope(NewTone(0, d, WaveNoise, rate), d, 2*time.Millisecond, 300*time.Millisecond, rate), 0.4),
		)
	case CueWave:
		s = beep.Seq(
			note(392, 90*time.Millisecond, WaveSquare, rate),
			note(523, 120*time.Millisecond, WaveSquare, rate),
		)
	case CueGameOver:
		s = beep.Seq(
			note(392, 180*time.Millisecond, WaveSaw, rate),
			note(330, 180*time.Millisecond, WaveSaw, rate),
			note(262, 360*time.Millisecond, WaveSaw, rate),
		)
	default:
		return nil
	}
	return withVolume(s, gain)
}
