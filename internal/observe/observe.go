// Package observe provides a minimal replace-only observable container:
// an owned cell holding an immutable snapshot, a listener registry and a
// single Set entry point that swaps the snapshot and fans out synchronously.
package observe

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Value holds the current snapshot of type T. The snapshot handed out by Get
// must be treated as immutable: every change goes through Set with a freshly
// built value, never by mutating a previously returned one. That invariant is
// what lets readers diff old vs new snapshots without locking.
//
// Set performs a synchronous fan-out to listeners in registration order.
// Writers are expected to serialize their Set calls (the record store does so
// under its own mutex); Get is safe to call from anywhere, including from
// inside a listener.
type Value[T any] struct {
	mu   sync.RWMutex
	cur  T
	subs []subscriber[T]
	next int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial}
}

// Get returns the current snapshot.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cur
}

// Set swaps the snapshot and notifies every registered listener, in
// registration order, with the new value. Listeners run outside the lock so
// they may freely call Get or Subscribe.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.cur = next
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribing
// twice is harmless.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, s := range v.subs {
			if s.id == id {
				v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
				return
			}
		}
	}
}
