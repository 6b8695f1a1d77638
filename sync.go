package slotstore

import (
	"io"
	"iter"
	"sync"
)

// SyncStore is a [Store] guarded by a read-write lock.
//
// Get, Contains, Len, Cap, All, SaveTo and UpdateStats may run concurrently
// with each other. Add, Set, Remove and Reset are exclusive.
type SyncStore[T any] struct {
	mu sync.RWMutex
	s  *Store[T]
}

// NewSync returns an empty store that is safe for concurrent use.
func NewSync[T any](opts ...Option) *SyncStore[T] {
	return &SyncStore[T]{s: New[T](opts...)}
}

// Add stores v and returns its index. See [Store.Add].
func (c *SyncStore[T]) Add(v T) Index {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.s.Add(v)
}

// Get returns the value stored under i. See [Store.Get].
func (c *SyncStore[T]) Get(i Index) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.s.Get(i)
}

// Contains reports whether i is live.
func (c *SyncStore[T]) Contains(i Index) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.s.Contains(i)
}

// Set replaces the value stored under i. See [Store.Set].
func (c *SyncStore[T]) Set(i Index, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.s.Set(i, v)
}

// Remove deletes the value stored under i and returns it. See [Store.Remove].
func (c *SyncStore[T]) Remove(i Index) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.s.Remove(i)
}

// Len returns the number of live values.
func (c *SyncStore[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.s.Len()
}

// Cap returns the number of slots held. See [Store.Cap].
func (c *SyncStore[T]) Cap() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.s.Cap()
}

// Reset removes all the values from the store.
func (c *SyncStore[T]) Reset() {
	c.mu.Lock()
	c.s.Reset()
	c.mu.Unlock()
}

// All returns an iterator over all live index-value pairs in ascending index
// order.
//
// The read lock is held for the whole iteration, so the loop body must not
// call Add, Set, Remove or Reset on c.
func (c *SyncStore[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()

		c.s.All()(yield)
	}
}

// SaveTo saves store data to the given writer. See [Store.SaveTo].
func (c *SyncStore[T]) SaveTo(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.s.SaveTo(w)
}

// UpdateStats adds store stats to s. See [Store.UpdateStats].
func (c *SyncStore[T]) UpdateStats(s *Stats) {
	c.mu.RLock()
	c.s.UpdateStats(s)
	c.mu.RUnlock()
}
