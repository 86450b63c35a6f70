package runstate

import "sync"

// Store is the external state store for one run.
// It serves the loadout/flags snapshot to the engine, folds published events
// into a State, and fans them out to listeners and channel subscribers.
type Store struct {
	mu        sync.RWMutex
	ext       External
	state     State
	listeners []func(Event)
	subs      []*ChannelSink
}

// NewStore creates a store for a run starting from the given snapshot.
// The initial state gets the loadout's starting lives and wave 1.
func NewStore(ext External) *Store {
	return &Store{
		ext: ext,
		state: State{
			Lives: ext.Loadout.InitialLives(ext.Flags),
			Wave:  1,
		},
	}
}

// External implements Source.
func (s *Store) External() External {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ext
}

// SetLoadout replaces the equipped loadout. The engine sees it on its next tick.
func (s *Store) SetLoadout(l Loadout) {
	s.mu.Lock()
	s.ext.Loadout = l
	s.mu.Unlock()
}

// SetFlags replaces the run flags. The engine sees them on its next tick.
func (s *Store) SetFlags(f Flags) {
	s.mu.Lock()
	s.ext.Flags = f
	s.mu.Unlock()
}

// State returns a copy of the reduced run state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnEvent registers a synchronous listener called for every published event.
// Listeners run on the publishing goroutine after the state is updated.
func (s *Store) OnEvent(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Subscribe returns a channel sink that receives every published event.
func (s *Store) Subscribe(bufferSize int) *ChannelSink {
	sink := NewChannelSink(bufferSize)
	s.mu.Lock()
	s.subs = append(s.subs, sink)
	s.mu.Unlock()
	return sink
}

// Publish implements Sink.
func (s *Store) Publish(events []Event) {
	if len(events) == 0 {
		return
	}

	s.mu.Lock()
	for _, ev := range events {
		Apply(&s.state, ev)
	}
	listeners := s.listeners
	subs := s.subs
	s.mu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
		for _, sub := range subs {
			sub.Send(ev)
		}
	}
}

// Close closes every subscriber. Safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
