package notify

import (
	"context"
	"sync"
)

// Notifier fans out "stock changed" signals to interested listeners.
// Signals carry no payload; listeners refetch whatever view they hold.
type Notifier interface {
	Publish(ctx context.Context) error
	Subscribe() (<-chan struct{}, func())
}

type NoopNotifier struct{}

func (NoopNotifier) Publish(_ context.Context) error {
	return nil
}

func (NoopNotifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{})
	return ch, func() {}
}

// Broadcast is the in-process notifier. Each subscriber gets a buffered
// channel of capacity one; a publish to a subscriber whose signal is
// still pending is dropped, which coalesces bursts into one refresh.
type Broadcast struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewBroadcast() *Broadcast {
	return &Broadcast{subs: make(map[int]chan struct{})}
}

func (b *Broadcast) Publish(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (b *Broadcast) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
