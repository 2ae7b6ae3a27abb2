package packedgo

import (
	"github.com/hupe1980/packedgo/internal/slot"
)

// item pairs a stored value with the slot that owns it. The owning slot is
// needed to fix up the slot table when swap-remove compaction moves the
// value to a new physical position.
type item[T any] struct {
	value T
	slot  uint32
}

// Store is a dense, fixed-maximum-capacity container handing out stable
// generational handles instead of raw positions.
//
// Values live contiguously in one backing array, so full traversal has
// optimal cache behavior. Removal keeps the array dense by moving the last
// value into the vacated position (swap-remove), which is O(1) but does not
// preserve traversal order. Handles survive this shuffling: they address a
// slot table entry, not a physical position, and a per-slot generation
// counter detects handles whose value is long gone.
//
// A Store performs no internal locking. Callers sharing one across
// goroutines must serialize all access themselves, including read-only
// operations, since Get updates hit/miss counters.
type Store[T any] struct {
	table *slot.Table
	items []item[T]

	opts     options
	stats    Stats
	mutation uint64
}

// New creates an empty store that can hold up to maxCapacity values.
// Capacity is a hard ceiling: Insert fails rather than grow past it.
func New[T any](maxCapacity int, opts ...Option) (*Store[T], error) {
	if maxCapacity < 0 || uint64(maxCapacity) > slot.MaxSlots {
		return nil, &ErrInvalidCapacity{Capacity: maxCapacity}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store[T]{
		table: slot.New(maxCapacity),
		items: make([]item[T], 0, maxCapacity),
		opts:  o,
	}
	if o.logger != nil {
		o.logger.WithCapacity(maxCapacity).Debug("store created")
	}
	return s, nil
}

// Insert takes ownership of value and returns a handle to it.
// Returns ErrCapacityExceeded when the store is full; the store is left
// unchanged in that case.
func (s *Store[T]) Insert(value T) (Handle, error) {
	idx, gen, ok := s.table.Alloc(uint32(len(s.items)))
	if !ok {
		return Handle{}, ErrCapacityExceeded
	}
	s.items = append(s.items, item[T]{value: value, slot: idx})

	s.mutation++
	s.stats.Inserts++
	if gen > 0 {
		s.stats.Reuses++
	}
	if len(s.items) > s.stats.PeakLen {
		s.stats.PeakLen = len(s.items)
	}
	s.verify()

	return Handle{slot: idx, generation: gen}, nil
}

// Get returns a pointer to the value the handle refers to, or (nil, false)
// for a stale or foreign handle. Stale handles are an expected condition,
// not an error.
//
// The pointer is writable and remains valid until the next structural
// mutation of the store: Remove moves values around to keep the backing
// array dense, and Clear discards them. Do not retain it across mutations.
func (s *Store[T]) Get(h Handle) (*T, bool) {
	pos, ok := s.table.Resolve(h.slot, h.generation)
	if !ok {
		s.stats.Misses++
		return nil, false
	}
	s.stats.Hits++
	return &s.items[pos].value, true
}

// Value returns a copy of the value the handle refers to.
func (s *Store[T]) Value(h Handle) (T, bool) {
	p, ok := s.Get(h)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// Contains reports whether the handle currently resolves to a live value.
func (s *Store[T]) Contains(h Handle) bool {
	_, ok := s.table.Resolve(h.slot, h.generation)
	return ok
}

// Remove deletes the value the handle refers to and returns it, transferring
// ownership back to the caller. A stale or foreign handle returns
// (zero, false) and leaves the store untouched; removing twice is a no-op
// the second time.
//
// Removal is O(1): the backing array's last value is moved into the vacated
// position and the moved value's slot is repointed at it, so the array stays
// dense. The removed slot's generation is bumped, which invalidates every
// outstanding handle to it, and the slot goes back to the free list for
// reuse (or is permanently retired if its generation counter is exhausted).
func (s *Store[T]) Remove(h Handle) (T, bool) {
	var zero T
	pos, ok := s.table.Resolve(h.slot, h.generation)
	if !ok {
		s.stats.Misses++
		return zero, false
	}

	last := len(s.items) - 1
	removed := s.items[pos].value
	if int(pos) != last {
		moved := s.items[last]
		s.items[pos] = moved
		s.table.SetPosition(moved.slot, pos)
		s.stats.Swaps++
	}
	s.items[last] = item[T]{} // release the value to the GC
	s.items = s.items[:last]

	if retired := s.table.Free(h.slot); retired {
		s.stats.RetiredSlots++
		if s.opts.logger != nil {
			s.opts.logger.LogSlotRetired(h.slot, s.stats.RetiredSlots)
		}
	}

	s.mutation++
	s.stats.Removes++
	s.verify()

	return removed, true
}

// Clear removes all values at once. Every occupied slot's generation is
// bumped, so all outstanding handles are invalidated exactly as if each
// value had been removed individually. The backing storage is retained.
func (s *Store[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]

	retired := s.table.Reset()
	if retired > 0 {
		s.stats.RetiredSlots += uint64(retired)
		if s.opts.logger != nil {
			s.opts.logger.Warn("slots retired during clear", "count", retired)
		}
	}

	s.mutation++
	s.stats.Clears++
	s.verify()
}

// Len returns the number of values currently stored. O(1).
func (s *Store[T]) Len() int { return len(s.items) }

// IsEmpty reports whether the store holds no values.
func (s *Store[T]) IsEmpty() bool { return len(s.items) == 0 }

// MaxCapacity returns the fixed capacity ceiling the store was created with.
func (s *Store[T]) MaxCapacity() int { return s.table.Slots() }

// Cap returns the allocated capacity of the dense backing array. The backing
// storage is reserved at construction, so this normally equals MaxCapacity.
func (s *Store[T]) Cap() int { return cap(s.items) }

// Stats returns cumulative operation counters.
func (s *Store[T]) Stats() Stats { return s.stats }

// verify enforces invariants after mutations when integrity checking is on.
func (s *Store[T]) verify() {
	if !s.opts.integrityChecks {
		return
	}
	if err := s.CheckIntegrity(); err != nil {
		panic("packedgo: " + err.Error())
	}
}
