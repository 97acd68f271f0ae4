package progress

import "sync"

// Bus is a single-producer-to-single-consumer Progress Bus. The producer is
// the pipeline; the consumer is whichever observer was attached to Events().
//
// The bus closes itself after the first Completed or Error event. Consumers
// must tolerate it being dropped at any time (e.g. a TUI quitting): Send on
// a closed or full bus drops the event, never a fatal condition, so the
// pipeline never blocks or panics on a dead consumer.
type Bus struct {
	ch chan Event

	mu     sync.Mutex
	closed bool
}

// NewBus creates a Progress Bus with the given channel buffer depth.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Events returns the read side of the bus for a consumer to range over.
func (b *Bus) Events() <-chan Event { return b.ch }

// Send publishes an event. It never blocks for long and never panics: a
// full or closed channel just drops the event. Sending an Error or
// Completed event closes the bus afterward.
func (b *Bus) Send(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.ch <- e:
	default:
		// Buffer full and no consumer draining fast enough; drop rather
		// than block the pipeline. Progress is best-effort.
	}
	if e.Kind == EventError || e.Kind == EventCompleted {
		b.closeLocked()
	}
}

// Close closes the bus early, e.g. on cooperative cancellation. Safe to
// call multiple times.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked()
}

func (b *Bus) closeLocked() {
	if b.closed {
		return
	}
	b.closed = true
	close(b.ch)
}
