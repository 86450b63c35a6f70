package runstate

import "sync"

// ChannelSink delivers events over a buffered channel without ever blocking
// the sender. When the buffer is full the oldest event is dropped.
type ChannelSink struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a sink with the given buffer size (64 if < 1).
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event. It never blocks.
func (c *ChannelSink) Send(ev Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- ev:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- ev:
		default:
		}
	}
}

// Publish implements Sink so a ChannelSink can be handed to an engine directly.
func (c *ChannelSink) Publish(events []Event) {
	for _, ev := range events {
		c.Send(ev)
	}
}

// Events returns the receive side of the sink.
func (c *ChannelSink) Events() <-chan Event {
	return c.events
}

// Done is closed when the sink is closed.
func (c *ChannelSink) Done() <-chan struct{} {
	return c.done
}

// Close marks the sink as done. Safe to call multiple times.
func (c *ChannelSink) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
