// Package packedgo provides a dense, cache-friendly generational store for Go.
//
// A Store keeps values contiguous in one backing array and hands callers
// stable, lightweight handles instead of raw indices:
//
//   - Raw indices into a compacting array go stale or silently alias another
//     value after a removal. Pointers forbid compaction and fragment memory.
//   - packedgo pairs each logical slot with a generation counter: a handle is
//     (slot, generation) and resolves only while its generation matches the
//     slot's current one, so stale handles are detected, never misdirected.
//   - Removal uses swap-remove compaction: the last value moves into the
//     vacated position in O(1) and the array stays dense for fast iteration.
//
// # Quick Start
//
//	store, err := packedgo.New[string](1024)
//	if err != nil {
//	    panic(err)
//	}
//
//	h, err := store.Insert("hello")
//	if err != nil {
//	    // packedgo.ErrCapacityExceeded when the store is full
//	}
//
//	if v, ok := store.Get(h); ok {
//	    *v = "hello, world" // pointers are writable
//	}
//
//	value, ok := store.Remove(h) // ownership back to the caller
//	_, ok = store.Get(h)         // ok == false: the handle is stale now
//
// Iterate the dense backing array directly:
//
//	for v := range store.Values() {
//	    process(*v)
//	}
//
// # Capacity Model
//
// The maximum capacity is fixed at construction and the backing storage is
// reserved up front. Insert fails with ErrCapacityExceeded instead of
// growing, preserving the fixed contiguous-region contract.
//
// # Concurrency
//
// A Store performs no internal locking. Share one across goroutines only
// behind external synchronization; a single-owner goroutine or a mutex both
// work. Unsynchronized use corrupts internal state (CheckIntegrity and
// WithIntegrityChecks exist to surface exactly that in tests).
//
// # Generation Exhaustion
//
// A slot's 32-bit generation counter increments on every reuse. If a single
// slot is ever recycled ~4 billion times, the slot is permanently retired
// rather than allowing the counter to wrap and alias old handles. Retirement
// reduces usable capacity by one and is reported via Stats and the optional
// Logger.
package packedgo
