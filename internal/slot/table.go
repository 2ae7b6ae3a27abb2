// Package slot implements the generation-tagged slot table behind a packed
// store.
//
// A slot is a stable logical identity (index + generation) decoupled from the
// physical position its value occupies in the dense backing array. The table
// records, per slot, the current generation and either the physical position
// (occupied) or the next link of an intrusive free list (free). Generations
// are bumped every time a slot is released, which is what invalidates handles
// that still reference the previous tenant.
//
// Slots whose generation counter is exhausted are retired instead of being
// recycled, so a handle can never alias a later tenant across a wrapped
// counter. Retirement costs one slot of capacity and needs ~4 billion reuse
// cycles of that single slot to trigger.
package slot

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

const (
	// MaxSlots is the largest slot count addressable by the 32-bit index
	// width handles encode.
	MaxSlots = math.MaxUint32

	// maxGeneration is never issued; a slot that reaches it is retired.
	maxGeneration = math.MaxUint32

	// noSlot terminates the free list.
	noSlot = math.MaxUint32
)

type state uint8

const (
	stateFree state = iota
	stateOccupied
	stateRetired
)

// entry is a tagged variant: link holds the physical position when occupied
// and the next free slot index when free. Retired entries hold neither.
type entry struct {
	generation uint32
	link       uint32
	state      state
}

// Table is a fixed-size slot table with an intrusive LIFO free list.
type Table struct {
	entries  []entry
	head     uint32
	occupied int
	retired  int
}

// New creates a table with n slots, all free at generation 0. The free list
// is threaded in index order so the lowest never-used index is handed out
// first.
func New(n int) *Table {
	t := &Table{
		entries: make([]entry, n),
		head:    noSlot,
	}
	for i := n - 1; i >= 0; i-- {
		t.entries[i].link = t.head
		t.head = uint32(i)
	}
	return t
}

// Alloc pops a slot off the free list, marks it occupied at the given
// physical position and returns its index and current generation. ok is
// false when no slot is available.
func (t *Table) Alloc(position uint32) (idx, gen uint32, ok bool) {
	if t.head == noSlot {
		return 0, 0, false
	}
	idx = t.head
	e := &t.entries[idx]
	t.head = e.link
	e.link = position
	e.state = stateOccupied
	t.occupied++
	return idx, e.generation, true
}

// Resolve validates (idx, gen) and returns the physical position of the
// slot's value. ok is false for out-of-range, free, retired or
// stale-generation lookups.
func (t *Table) Resolve(idx, gen uint32) (pos uint32, ok bool) {
	if int(idx) >= len(t.entries) {
		return 0, false
	}
	e := &t.entries[idx]
	if e.state != stateOccupied || e.generation != gen {
		return 0, false
	}
	return e.link, true
}

// PositionOf returns the physical position of an occupied slot regardless of
// generation. Used for integrity checks and internal fixups.
func (t *Table) PositionOf(idx uint32) (pos uint32, ok bool) {
	if int(idx) >= len(t.entries) || t.entries[idx].state != stateOccupied {
		return 0, false
	}
	return t.entries[idx].link, true
}

// SetPosition repoints an occupied slot at a new physical position. Called
// when swap-remove compaction moves the backing array's last value into a
// vacated spot.
func (t *Table) SetPosition(idx, pos uint32) {
	t.entries[idx].link = pos
}

// Generation returns the current generation of a slot.
func (t *Table) Generation(idx uint32) uint32 {
	return t.entries[idx].generation
}

// Free releases an occupied slot and bumps its generation, invalidating all
// outstanding handles to it. The slot returns to the head of the free list
// unless the bumped generation hits the counter's ceiling, in which case the
// slot is retired and retired=true is reported.
//
// The caller must only pass occupied indices (Resolve first).
func (t *Table) Free(idx uint32) (retired bool) {
	e := &t.entries[idx]
	e.generation++
	t.occupied--
	if e.generation == maxGeneration {
		e.state = stateRetired
		e.link = 0
		t.retired++
		return true
	}
	e.state = stateFree
	e.link = t.head
	t.head = idx
	return false
}

// Reset releases every occupied slot at once, bumping generations exactly as
// Free does, and rebuilds the free list in index order. Returns the number of
// slots retired during the sweep.
func (t *Table) Reset() (retired int) {
	t.head = noSlot
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := &t.entries[i]
		switch e.state {
		case stateOccupied:
			e.generation++
			t.occupied--
			if e.generation == maxGeneration {
				e.state = stateRetired
				e.link = 0
				t.retired++
				retired++
				continue
			}
			e.state = stateFree
		case stateRetired:
			continue
		}
		e.link = t.head
		t.head = uint32(i)
	}
	return retired
}

// Slots returns the total slot count the table was created with.
func (t *Table) Slots() int { return len(t.entries) }

// Occupied returns the number of currently occupied slots.
func (t *Table) Occupied() int { return t.occupied }

// Retired returns the number of permanently retired slots.
func (t *Table) Retired() int { return t.retired }

// Validate walks the free list and the entry states and verifies that they
// agree: the free list contains exactly the free slots, with no duplicates
// and no cycles, and the occupied/retired accounting matches the entry
// states. Free-list membership is tracked in a roaring bitmap so duplicate
// and cycle detection stays cheap even for large tables.
func (t *Table) Validate() error {
	seen := roaring.New()
	listLen := 0
	for cur := t.head; cur != noSlot; {
		if int(cur) >= len(t.entries) {
			return fmt.Errorf("free list references slot %d beyond table size %d", cur, len(t.entries))
		}
		if seen.Contains(cur) {
			return fmt.Errorf("free list revisits slot %d (duplicate or cycle)", cur)
		}
		seen.Add(cur)
		listLen++
		e := &t.entries[cur]
		if e.state != stateFree {
			return fmt.Errorf("free list contains slot %d in state %d", cur, e.state)
		}
		cur = e.link
	}

	occupied, retired, free := 0, 0, 0
	for i := range t.entries {
		switch t.entries[i].state {
		case stateOccupied:
			occupied++
		case stateRetired:
			retired++
		case stateFree:
			free++
			if !seen.Contains(uint32(i)) {
				return fmt.Errorf("free slot %d missing from free list", i)
			}
		}
	}
	if listLen != free {
		return fmt.Errorf("free list length %d does not match free slot count %d", listLen, free)
	}
	if occupied != t.occupied {
		return fmt.Errorf("occupied count %d does not match entry states (%d)", t.occupied, occupied)
	}
	if retired != t.retired {
		return fmt.Errorf("retired count %d does not match entry states (%d)", t.retired, retired)
	}
	if occupied+retired+free != len(t.entries) {
		return fmt.Errorf("state counts %d+%d+%d do not cover %d slots", occupied, retired, free, len(t.entries))
	}
	return nil
}
