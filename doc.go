// Package slotstore provides a generic store that hands out stable integer
// indices for its values, built for workloads where most values are removed
// again, such as tracking in-flight requests or timers.
//
// Lookups are plain slice accesses, so the store is cheaper than a map for
// this pattern while still giving each value a fixed-size identifier.
// It does not track expiry; callers decide when a value is done and call
// [Store.Remove].
//
// # Architecture
//
// Values live in a window of slots over the index space. Each slot is
// either occupied by a value or vacant. Vacant slots form an intrusive
// doubly-linked free list, so:
//
//   - [Store.Add] reuses the most recently freed slot, or appends one
//   - [Store.Get], [Store.Contains] and [Store.Remove] index the window
//     directly
//
// # Shrinking
//
// After every successful remove the store gives memory back:
//
//   - Vacant slots at the end of the window are dropped right away.
//   - Once fewer than half of the window's slots are occupied, the front
//     half is cut. Values still live there move to a map and keep their
//     indices.
//   - When the store becomes empty it starts over from index 0.
//
// The more likely old values are removed before new ones, the less the map
// is used. In the best case the store behaves like a slice with O(1)
// removal; in the worst case like a map with some extra branching.
//
// # Indices
//
// Indices carry no generation counter. A removed index may be handed out
// again by a later Add, and a caller holding on to the old index would then
// see the new value.
//
// # Serialization
//
// A store can be written with [Store.SaveTo] and read back with [LoadFrom]
// using gob encoding with minlz compression. Live indices are preserved.
//
// # Thread Safety
//
// [Store] is not safe for concurrent use. [SyncStore] wraps it with a
// read-write lock so that lookups may run in parallel.
package slotstore
