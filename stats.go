package packedgo

// Stats tracks cumulative store activity.
//
// Note on semantics:
//   - Reuses counts inserts that recycled a previously used slot
//   - Swaps counts removals that had to relocate the last value
//   - Hits counts successful lookups; Misses counts stale or foreign
//     handles across Get, Value and Remove
//   - RetiredSlots counts slots permanently lost to generation exhaustion
type Stats struct {
	Inserts      uint64
	Removes      uint64
	Clears       uint64
	Hits         uint64
	Misses       uint64
	Reuses       uint64
	Swaps        uint64
	RetiredSlots uint64
	PeakLen      int
}
