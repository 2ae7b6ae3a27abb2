package packedgo

import "fmt"

// CheckIntegrity verifies every structural invariant of the store and
// returns an ErrIntegrity describing the first violation found, or nil.
//
// Checked invariants:
//   - the free list contains exactly the free slots, without duplicates or
//     cycles (delegated to the slot table)
//   - occupied slot count equals Len()
//   - every backing position p holds a value whose owning slot points back
//     at p (the handle indirection is consistent both ways)
//
// The walk is O(n) in slot count. A healthy store can never fail it; a
// failure indicates memory corruption, almost always from unsynchronized
// concurrent mutation.
func (s *Store[T]) CheckIntegrity() error {
	if err := s.table.Validate(); err != nil {
		return &ErrIntegrity{Detail: "slot table", cause: err}
	}

	if s.table.Occupied() != len(s.items) {
		return &ErrIntegrity{
			Detail: fmt.Sprintf("occupied slots %d != stored values %d", s.table.Occupied(), len(s.items)),
		}
	}
	if len(s.items)+s.table.Retired() > s.table.Slots() {
		return &ErrIntegrity{
			Detail: fmt.Sprintf("live %d + retired %d exceeds %d slots", len(s.items), s.table.Retired(), s.table.Slots()),
		}
	}

	for i := range s.items {
		owner := s.items[i].slot
		pos, ok := s.table.PositionOf(owner)
		if !ok {
			return &ErrIntegrity{
				Detail: fmt.Sprintf("position %d owned by slot %d which is not occupied", i, owner),
			}
		}
		if int(pos) != i {
			return &ErrIntegrity{
				Detail: fmt.Sprintf("position %d owned by slot %d which points at position %d", i, owner, pos),
			}
		}
	}
	return nil
}
