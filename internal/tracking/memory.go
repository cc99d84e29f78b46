package tracking

import (
	"context"
	"sync"
)

const defaultBuffer = 16

// MemoryBroker is an in-process Broker.
type MemoryBroker struct {
	mu      sync.Mutex
	subs    map[string]map[chan Event]struct{}
	buffer  int
	dropped counter
}

// NewMemoryBroker returns a broker whose subscriber channels hold up to buffer events.
func NewMemoryBroker(buffer int, dropped counter) *MemoryBroker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &MemoryBroker{
		subs:    map[string]map[chan Event]struct{}{},
		buffer:  buffer,
		dropped: dropped,
	}
}

var _ Broker = (*MemoryBroker)(nil)

// Subscribe registers a channel for the room. The subscription ends when
// the returned cancel is called or ctx is done; the channel is closed then.
func (b *MemoryBroker) Subscribe(ctx context.Context, room string) (<-chan Event, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	if b.subs[room] == nil {
		b.subs[room] = map[chan Event]struct{}{}
	}
	b.subs[room][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			b.unsubscribe(room, ch)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}

func (b *MemoryBroker) unsubscribe(room string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m := b.subs[room]; m != nil {
		delete(m, ch)
		if len(m) == 0 {
			delete(b.subs, room)
		}
	}
	close(ch)
}

// Publish delivers e to every subscriber of e.Room, dropping it for full buffers.
func (b *MemoryBroker) Publish(_ context.Context, e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[e.Room] {
		select {
		case ch <- e:
		default:
			if b.dropped != nil {
				b.dropped.Inc()
			}
		}
	}
	return nil
}

// Subscribers returns the number of subscribers of a room.
func (b *MemoryBroker) Subscribers(room string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[room])
}
