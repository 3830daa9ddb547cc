package notify

import "sync"

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Broadcaster delivers values of type T to a list of listeners.
// The zero value is ready to use.
type Broadcaster[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener[T]
}

// Add registers fn and returns a function that removes it. The remove
// function is idempotent.
func (b *Broadcaster[T]) Add(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener[T]{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every listener registered at the time of the call with v.
func (b *Broadcaster[T]) Emit(v T) {
	b.mu.Lock()
	fns := make([]func(T), len(b.listeners))
	for i, l := range b.listeners {
		fns[i] = l.fn
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len reports the number of registered listeners.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Clear removes every listener.
func (b *Broadcaster[T]) Clear() {
	b.mu.Lock()
	b.listeners = nil
	b.mu.Unlock()
}
