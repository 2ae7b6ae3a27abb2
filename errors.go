package packedgo

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned by Insert when the store already
	// holds MaxCapacity values. The store never grows past its cap.
	ErrCapacityExceeded = errors.New("max capacity exceeded")
)

// ErrInvalidCapacity indicates a maximum capacity that cannot be
// represented by the store's 32-bit slot index width.
type ErrInvalidCapacity struct {
	Capacity int
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid max capacity: %d", e.Capacity)
}

// ErrIntegrity indicates a violated internal invariant found by
// CheckIntegrity. Seeing this error means the store's memory was corrupted,
// typically by unsynchronized concurrent mutation.
type ErrIntegrity struct {
	Detail string
	cause  error
}

func (e *ErrIntegrity) Error() string {
	return fmt.Sprintf("integrity violation: %s", e.Detail)
}

func (e *ErrIntegrity) Unwrap() error { return e.cause }
