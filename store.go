package slotstore

import (
	"iter"
	"maps"
	"slices"
	"sync/atomic"
)

// Index is the stable identifier returned by [Store.Add].
//
// Indices carry no generation. Once an index has been removed, a later Add
// may hand out the same index for a new value, and the old holder cannot
// tell the difference.
type Index uint64

// Store holds values under stable indices with O(1) add, get and remove.
//
// A Store must not be copied after first use, and it is not safe for
// concurrent use. Wrap it in a [SyncStore] when several goroutines need
// access.
type Store[T any] struct {
	// slots is the window [base, base+len(slots)) of the index space.
	slots []slot[T]
	base  Index

	// spill holds values whose indices fell below base during compaction.
	spill map[Index]T

	free Index // free list head, nilIndex if empty
	live int   // occupied slots in the window

	opts options

	// stats
	getCalls    uint64 // atomic
	misses      uint64 // atomic
	addCalls    uint64
	reuses      uint64
	removes     uint64
	truncated   uint64
	compactions uint64
	spilled     uint64
}

// New returns an empty store.
func New[T any](opts ...Option) *Store[T] {
	s := &Store[T]{
		free: nilIndex,
		opts: newOptions(opts),
	}
	if s.opts.capacity > 0 {
		s.slots = make([]slot[T], 0, s.opts.capacity)
	}

	return s
}

// Add stores v and returns its index.
//
// Vacant slots are reused before the window grows, most recently freed
// first.
func (s *Store[T]) Add(v T) Index {
	s.addCalls++
	s.live++

	if s.free != nilIndex {
		s.reuses++
		i := s.popFree()
		sl := s.at(i)
		sl.value = v
		sl.occupied = true

		return i
	}

	s.slots = append(s.slots, slot[T]{
		value:    v,
		prev:     nilIndex,
		next:     nilIndex,
		occupied: true,
	})

	return s.base + Index(len(s.slots)-1)
}

// Get returns the value stored under i.
//
// Returns the zero value and false if i is not live.
func (s *Store[T]) Get(i Index) (T, bool) {
	atomic.AddUint64(&s.getCalls, 1)

	if i < s.base {
		v, ok := s.spill[i]
		if !ok {
			atomic.AddUint64(&s.misses, 1)
		}

		return v, ok
	}

	if j := i - s.base; j < Index(len(s.slots)) && s.slots[j].occupied {
		return s.slots[j].value, true
	}
	atomic.AddUint64(&s.misses, 1)

	var zero T

	return zero, false
}

// Contains reports whether i is live.
func (s *Store[T]) Contains(i Index) bool {
	atomic.AddUint64(&s.getCalls, 1)

	var ok bool
	if i < s.base {
		_, ok = s.spill[i]
	} else {
		j := i - s.base
		ok = j < Index(len(s.slots)) && s.slots[j].occupied
	}
	if !ok {
		atomic.AddUint64(&s.misses, 1)
	}

	return ok
}

// Set replaces the value stored under i.
//
// Returns false and leaves the store unchanged if i is not live.
func (s *Store[T]) Set(i Index, v T) bool {
	if i < s.base {
		if _, ok := s.spill[i]; !ok {
			return false
		}
		s.spill[i] = v

		return true
	}

	j := i - s.base
	if j >= Index(len(s.slots)) || !s.slots[j].occupied {
		return false
	}
	s.slots[j].value = v

	return true
}

// Remove deletes the value stored under i and returns it.
//
// Returns the zero value and false if i is not live; the store is then left
// unchanged. After a successful remove, i may be handed out again by Add.
func (s *Store[T]) Remove(i Index) (T, bool) {
	var zero T

	if i < s.base {
		v, ok := s.spill[i]
		if !ok {
			return zero, false
		}
		delete(s.spill, i)
		s.removes++
		s.shrink()

		return v, true
	}

	j := i - s.base
	if j >= Index(len(s.slots)) || !s.slots[j].occupied {
		return zero, false
	}

	v := s.slots[j].value
	s.pushFree(i)
	s.live--
	s.removes++
	s.shrink()

	return v, true
}

// Len returns the number of live values.
func (s *Store[T]) Len() int {
	return s.live + len(s.spill)
}

// Cap returns the number of slots held: the window length, occupied or
// vacant, plus the spilled values. It counts slots, not the allocated room
// of the backing array.
func (s *Store[T]) Cap() int {
	return len(s.slots) + len(s.spill)
}

// Reset removes all the values from the store.
//
// Stats are reset as well.
func (s *Store[T]) Reset() {
	opts := s.opts
	*s = Store[T]{
		free: nilIndex,
		opts: opts,
	}
	if opts.capacity > 0 {
		s.slots = make([]slot[T], 0, opts.capacity)
	}
}

// All returns an iterator over all live index-value pairs in ascending index
// order.
//
// The store must not be modified during iteration.
func (s *Store[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for _, i := range slices.Sorted(maps.Keys(s.spill)) {
			if !yield(i, s.spill[i]) {
				return
			}
		}

		for k := range s.slots {
			sl := &s.slots[k]
			if !sl.occupied {
				continue
			}
			if !yield(s.base+Index(k), sl.value) {
				return
			}
		}
	}
}

// Indices returns an iterator over all live indices in ascending order.
//
// The store must not be modified during iteration.
func (s *Store[T]) Indices() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for i := range s.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// Values returns an iterator over all live values in ascending index order.
//
// The store must not be modified during iteration.
func (s *Store[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.All() {
			if !yield(v) {
				return
			}
		}
	}
}
