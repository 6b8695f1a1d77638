package slotstore

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minlz"
)

const snapshotVersion = 1

// ErrInvalidSnapshot is returned by [LoadFrom] when the data is not a valid
// snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// snapshotHeader precedes the entries of a snapshot.
type snapshotHeader struct {
	Version int
	Base    uint64
	Window  uint64
	Entries int
}

// entry is used for serializing index-value pairs.
type entry[T any] struct {
	Index Index
	Value T
}

// SaveTo saves store data to the given writer.
//
// The data is serialized using [gob] and compressed with [minlz]. Every
// live index is preserved; the order in which vacant indices are reused is
// not. If T is an interface type, the concrete types must be registered with
// [gob.Register].
//
// The saved data may be loaded with [LoadFrom].
func (s *Store[T]) SaveTo(w io.Writer) error {
	zw := minlz.NewWriter(w)
	enc := gob.NewEncoder(zw)

	h := snapshotHeader{
		Version: snapshotVersion,
		Base:    uint64(s.base),
		Window:  uint64(len(s.slots)),
		Entries: s.Len(),
	}
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("cannot encode header: %w", err)
	}

	for i, v := range s.All() {
		if err := enc.Encode(entry[T]{Index: i, Value: v}); err != nil {
			return fmt.Errorf("cannot encode entry %d: %w", i, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("cannot close minlz writer: %w", err)
	}

	return nil
}

// LoadFrom loads store data from the given reader.
//
// Every index saved by [Store.SaveTo] refers to the same value in the
// returned store. Returns an error wrapping [ErrInvalidSnapshot] if the data
// is corrupted.
//
// Pass the [WithCompactThreshold] option the saving store was created with;
// a lower threshold may reject a valid snapshot.
func LoadFrom[T any](r io.Reader, opts ...Option) (*Store[T], error) {
	zr := minlz.NewReader(r)
	dec := gob.NewDecoder(zr)

	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("cannot decode header: %w", err)
	}
	if h.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, h.Version)
	}
	if h.Entries < 0 || h.Base+h.Window < h.Base || h.Base+h.Window == uint64(nilIndex) {
		return nil, fmt.Errorf("%w: bad header %+v", ErrInvalidSnapshot, h)
	}

	// Nothing is sized from the header until the entries are read.
	var entries []entry[T]
	for n := range h.Entries {
		var e entry[T]
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %d of %d entries: %w", ErrInvalidSnapshot, n, h.Entries, err)
			}

			return nil, fmt.Errorf("cannot decode entry %d: %w", n, err)
		}
		entries = append(entries, e)
	}

	var extra entry[T]
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: data after %d entries", ErrInvalidSnapshot, h.Entries)
	}

	s := New[T](opts...)
	// At rest, a window longer than the compact threshold is at least half
	// occupied.
	if h.Window > max(2*uint64(len(entries)), uint64(s.opts.compactThreshold)) {
		return nil, fmt.Errorf("%w: window of %d slots for %d entries", ErrInvalidSnapshot, h.Window, len(entries))
	}
	s.base = Index(h.Base)
	s.slots = make([]slot[T], h.Window, max(int(h.Window), s.opts.capacity))

	for n, e := range entries {
		if err := s.restore(e); err != nil {
			return nil, fmt.Errorf("cannot restore entry %d: %w", n, err)
		}
	}

	// Link vacant slots so the lowest index ends up at the head.
	for k := len(s.slots) - 1; k >= 0; k-- {
		if !s.slots[k].occupied {
			s.pushFree(s.base + Index(k))
		}
	}
	s.truncateTail()
	s.compactFront()
	if s.live == 0 && len(s.spill) == 0 {
		s.slots = s.slots[:0]
		s.base = 0
		s.free = nilIndex
	}

	return s, nil
}

// restore places a decoded entry into a store under construction.
func (s *Store[T]) restore(e entry[T]) error {
	if e.Index < s.base {
		if _, ok := s.spill[e.Index]; ok {
			return fmt.Errorf("%w: duplicate index %d", ErrInvalidSnapshot, e.Index)
		}
		if s.spill == nil {
			s.spill = make(map[Index]T)
		}
		s.spill[e.Index] = e.Value

		return nil
	}

	j := e.Index - s.base
	if j >= Index(len(s.slots)) {
		return fmt.Errorf("%w: index %d outside window [%d, %d)", ErrInvalidSnapshot,
			e.Index, s.base, s.base+Index(len(s.slots)))
	}
	if s.slots[j].occupied {
		return fmt.Errorf("%w: duplicate index %d", ErrInvalidSnapshot, e.Index)
	}
	s.slots[j] = slot[T]{
		value:    e.Value,
		prev:     nilIndex,
		next:     nilIndex,
		occupied: true,
	}
	s.live++

	return nil
}
