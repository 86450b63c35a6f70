package audio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/milkrun/internal/runstate"
)

const sampleRate = beep.SampleRate(48000)

// Player mixes sound cues onto the speaker.
// Until Initialize succeeds every Play is a no-op, so a Player is safe to use
// on machines without an audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewPlayer creates a player with a master volume in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    logger,
	}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues a cue on the mixer.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Build(c, p.volume, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Run plays cues for events arriving on sink until ctx is cancelled or the
// sink is closed.
func (p *Player) Run(ctx context.Context, sink *runstate.ChannelSink) {
	var t tracker
	for {
		select {
		case <-ctx.Done():
			return
		case <-sink.Done():
			return
		case ev := <-sink.Events():
			c := t.next(ev)
			if c == CueNone {
				continue
			}
			p.log.Debug("cue", "cue", c)
			p.Play(c)
		}
	}
}

// Close silences everything that is still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
