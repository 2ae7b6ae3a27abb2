package packedgo

import "iter"

// Values returns an iterator over pointers to all live values in physical
// order. The traversal is dense: it yields exactly Len() values with no
// holes to skip. Order is arbitrary and changes across removals.
//
// The sequence is a live view. Structurally mutating the store (Insert,
// Remove, Clear) while consuming it is detected and panics, matching Go's
// map iteration semantics. Writing through the yielded pointers is fine.
func (s *Store[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		start := s.mutation
		for i := range s.items {
			if s.mutation != start {
				panic("packedgo: store mutated during iteration")
			}
			if !yield(&s.items[i].value) {
				return
			}
		}
	}
}

// All returns an iterator over (handle, value pointer) pairs for all live
// values in physical order. The yielded handles are the same ones Insert
// returned for each value. Mutation rules match Values.
func (s *Store[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		start := s.mutation
		for i := range s.items {
			if s.mutation != start {
				panic("packedgo: store mutated during iteration")
			}
			h := Handle{
				slot:       s.items[i].slot,
				generation: s.table.Generation(s.items[i].slot),
			}
			if !yield(h, &s.items[i].value) {
				return
			}
		}
	}
}

// Handles returns an iterator over the handles of all live values.
func (s *Store[T]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h := range s.All() {
			if !yield(h) {
				return
			}
		}
	}
}
