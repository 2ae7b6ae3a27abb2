package packedgo

import "fmt"

// Handle is an opaque, copyable reference to a value stored in a Store.
//
// A handle pairs the slot index a value was assigned at Insert time with the
// slot's generation at that moment. It stays valid until the value is
// removed; once the slot is reused, the bumped generation makes every old
// handle resolve to nothing rather than to the new tenant.
//
// Handles are plain data: comparable with ==, cheap to store in other
// containers, and carry no reference to store internals. They are only
// meaningful against the store that issued them; a handle used against
// another store may resolve to an unrelated value. A handle held across the
// destruction of its store is a caller error this design cannot detect.
type Handle struct {
	slot       uint32
	generation uint32
}

// String renders the handle for debugging.
func (h Handle) String() string {
	return fmt.Sprintf("Handle(slot=%d, gen=%d)", h.slot, h.generation)
}
