package milkrun

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/milkrun/internal/runstate"
)

// SimResult summarizes a headless run.
type SimResult struct {
	State   runstate.State
	Ticks   int
	Elapsed time.Duration  // simulated time
	Events  map[string]int // published events by type name
	Hash    uint64         // final world hash
}

// Simulate flies the Autopilot for up to d of simulated time in fixed steps,
// stopping early at game over.
func Simulate(opts Options, d, step time.Duration) SimResult {
	if step <= 0 {
		step = time.Second / 60
	}
	e := NewEngine(opts)
	defer e.Close()

	res := SimResult{Events: make(map[string]int)}
	for res.Elapsed < d && !e.State().GameOver {
		snap := e.Snapshot()
		for _, ev := range e.Tick(Autopilot(&snap), step) {
			res.Events[eventName(ev)]++
		}
		res.Ticks++
		res.Elapsed += step
	}

	final := e.Snapshot()
	res.State = e.State()
	res.Hash = final.Hash()
	return res
}

func eventName(ev runstate.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
