package manifest

import (
	"context"
	"sync"
)

type broadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan RecordEvent
	nextID   uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{watchers: make(map[uint64]chan RecordEvent)}
}

func (b *broadcaster) Subscribe(ctx context.Context) (<-chan RecordEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		ch := make(chan RecordEvent)
		close(ch)
		return ch, nil
	}

	ch := make(chan RecordEvent, 1)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// Broadcast never blocks; a watcher with a full buffer misses the event.
func (b *broadcaster) Broadcast(evt RecordEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
