package slotstore

import "slices"

// nilIndex terminates the free list.
const nilIndex = ^Index(0)

// defaultCompactThreshold is the window length at or below which the front
// of the window is never compacted.
const defaultCompactThreshold = 32

// slot is one position of the window.
//
// An occupied slot holds a value. A vacant slot holds the links of the
// free list instead; its value is always the zero value.
type slot[T any] struct {
	value    T
	prev     Index
	next     Index
	occupied bool
}

// at returns the window slot for the absolute index i.
func (s *Store[T]) at(i Index) *slot[T] {
	return &s.slots[i-s.base]
}

// pushFree vacates the slot at i and makes it the free list head.
func (s *Store[T]) pushFree(i Index) {
	sl := s.at(i)
	var zero T
	sl.value = zero
	sl.occupied = false
	sl.prev = nilIndex
	sl.next = s.free
	if s.free != nilIndex {
		s.at(s.free).prev = i
	}
	s.free = i
}

// popFree detaches the free list head and returns its index.
// The free list must not be empty.
func (s *Store[T]) popFree() Index {
	i := s.free
	sl := s.at(i)
	s.free = sl.next
	if s.free != nilIndex {
		s.at(s.free).prev = nilIndex
	}
	sl.next, sl.prev = nilIndex, nilIndex

	return i
}

// unlinkFree removes the vacant slot at i from anywhere in the free list.
func (s *Store[T]) unlinkFree(i Index) {
	sl := s.at(i)
	if sl.prev != nilIndex {
		s.at(sl.prev).next = sl.next
	} else {
		s.free = sl.next
	}
	if sl.next != nilIndex {
		s.at(sl.next).prev = sl.prev
	}
	sl.next, sl.prev = nilIndex, nilIndex
}

// shrink runs after every successful remove.
func (s *Store[T]) shrink() {
	s.truncateTail()
	s.compactFront()

	if s.live == 0 && len(s.spill) == 0 {
		// Nothing is live: start over from index 0 so the next adds reuse
		// the indices that were just freed.
		s.slots = s.slots[:0]
		s.spill = nil
		s.base = 0
		s.free = nilIndex
	}

	s.release()
}

// truncateTail drops the trailing run of vacant slots.
func (s *Store[T]) truncateTail() {
	n := len(s.slots)
	for n > 0 && !s.slots[n-1].occupied {
		s.unlinkFree(s.base + Index(n-1))
		n--
	}
	if dropped := len(s.slots) - n; dropped > 0 {
		s.slots = s.slots[:n]
		s.truncated += uint64(dropped)
	}
}

// compactFront cuts the front of the window once fewer than half of its
// slots are occupied. Values still live in the cut region move to the spill
// map, so their indices stay valid.
func (s *Store[T]) compactFront() {
	n := len(s.slots)
	if !s.sparse(s.live, n) {
		return
	}

	cut := n / 2
	// live counts occupied slots in slots[cut:].
	live := s.live - s.occupiedIn(s.slots[:cut])
	for rem := n - cut; s.sparse(live, rem); rem = n - cut {
		next := cut + rem/2
		live -= s.occupiedIn(s.slots[cut:next])
		cut = next
	}

	for k := range cut {
		i := s.base + Index(k)
		sl := &s.slots[k]
		if !sl.occupied {
			s.unlinkFree(i)
			continue
		}
		if s.spill == nil {
			s.spill = make(map[Index]T)
		}
		s.spill[i] = sl.value
		s.spilled++
	}

	s.live = live
	s.slots = slices.Clone(s.slots[cut:])
	s.base += Index(cut)
	s.compactions++
}

// sparse reports whether a window part of length n with live occupied slots
// should be compacted.
func (s *Store[T]) sparse(live, n int) bool {
	return live*2 < n && n > s.opts.compactThreshold
}

func (s *Store[T]) occupiedIn(slots []slot[T]) int {
	var n int
	for i := range slots {
		if slots[i].occupied {
			n++
		}
	}

	return n
}

// release moves the window into a smaller backing array once it uses less
// than a quarter of the current one. It never goes below the preallocated
// capacity.
func (s *Store[T]) release() {
	c := cap(s.slots)
	if c <= s.opts.capacity || c <= s.opts.compactThreshold || len(s.slots)*4 >= c {
		return
	}

	slots := make([]slot[T], len(s.slots), max(len(s.slots)*2, s.opts.capacity))
	copy(slots, s.slots)
	s.slots = slots
}
