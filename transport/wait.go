package transport

import (
	"context"
	"fmt"

	"github.com/aquarelle-tech/smc/storage"
)

// awaitValue blocks until store holds a value under key, or ctx is done. A
// newly-arriving Put wakes any waiter registered for that exact key; this
// gives retrieve_private/retrieve_public genuine blocking-receive behaviour,
// preserving the protocol's happens-before ordering without a fixed-interval
// polling loop for the common case where the value is already there or
// arrives promptly.
func (b *Broker) awaitValue(ctx context.Context, key string) ([]byte, error) {
	if v, err := b.store.Get(key); err == nil {
		return v, nil
	} else if err != storage.ErrNotFound {
		return nil, err
	}

	ch := b.register(key)
	defer b.unregister(key, ch)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transport: timed out waiting for %q: %w", key, ctx.Err())
		case <-ch:
			if v, err := b.store.Get(key); err == nil {
				return v, nil
			} else if err != storage.ErrNotFound {
				return nil, err
			}
			// The broker never deletes a stored value and stores before it
			// wakes, so Get normally succeeds here; if it does not, go back
			// to waiting.
		}
	}
}

func (b *Broker) register(key string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan struct{}, 1)
	b.waiters[key] = append(b.waiters[key], ch)
	return ch
}

func (b *Broker) unregister(key string, ch chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.waiters[key]
	for i, c := range list {
		if c == ch {
			b.waiters[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.waiters[key]) == 0 {
		delete(b.waiters, key)
	}
}

func (b *Broker) wake(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.waiters[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
