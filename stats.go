package slotstore

import "sync/atomic"

// Stats represents store stats.
//
// Use [Store.UpdateStats] for obtaining fresh stats from the store.
type Stats struct {
	// GetCalls is the number of Get and Contains calls.
	GetCalls uint64

	// Misses is the number of Get and Contains calls for indices that were
	// not live.
	Misses uint64

	// Hits is the number of Get and Contains calls that found a value.
	Hits uint64

	// AddCalls is the number of Add calls.
	AddCalls uint64

	// Reuses is the number of Add calls served from the free list.
	Reuses uint64

	// Removes is the number of successful Remove calls.
	Removes uint64

	// Truncated is the number of vacant slots dropped from the window tail.
	Truncated uint64

	// Compactions is the number of times the window front was cut.
	Compactions uint64

	// Spilled is the number of live values moved out of the window by
	// compactions.
	Spilled uint64

	// EntriesCount is the current number of live values.
	EntriesCount uint64

	// Capacity is the current number of slots held.
	Capacity uint64
}

// UpdateStats adds store stats to s.
//
// Call [Stats.Reset] before calling UpdateStats if s is re-used.
func (st *Store[T]) UpdateStats(s *Stats) {
	s.GetCalls += atomic.LoadUint64(&st.getCalls)
	s.Misses += atomic.LoadUint64(&st.misses)
	s.AddCalls += st.addCalls
	s.Reuses += st.reuses
	s.Removes += st.removes
	s.Truncated += st.truncated
	s.Compactions += st.compactions
	s.Spilled += st.spilled

	s.EntriesCount = uint64(st.Len())
	s.Capacity = uint64(st.Cap())
	s.Hits = s.GetCalls - s.Misses
}

// Reset resets s, so it may be re-used again in [Store.UpdateStats].
func (s *Stats) Reset() {
	*s = Stats{}
}
