package slotstore

import "fmt"

type options struct {
	capacity         int
	compactThreshold int
}

// Option configures a [Store] created with [New], [NewSync] or [LoadFrom].
type Option func(*options)

// WithCapacity preallocates room for n slots.
//
// The store never releases its backing array below this size. Panics if n
// is negative.
func WithCapacity(n int) Option {
	if n < 0 {
		panic(fmt.Errorf("capacity must not be negative; got %d", n))
	}

	return func(o *options) {
		o.capacity = n
	}
}

// WithCompactThreshold sets the window length at or below which the front of
// the window is never compacted.
//
// A compaction cuts at least half of the window once fewer than half of its
// slots are occupied, moving the values still live in the cut region to a
// map. Higher thresholds trade memory for fewer map lookups on old indices.
// The default is 32. Panics if n is less than 1.
func WithCompactThreshold(n int) Option {
	if n < 1 {
		panic(fmt.Errorf("compact threshold must be greater than 0; got %d", n))
	}

	return func(o *options) {
		o.compactThreshold = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		compactThreshold: defaultCompactThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
