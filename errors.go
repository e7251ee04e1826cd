package dynarray

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocationFailure is returned when a block of the requested size cannot be obtained.
	// The operation that reported it has left its receiver unchanged.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrIndexOutOfRange is returned by the bounds-checked accessors.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrLimitExceeded is the cause wrapped in ErrAllocationFailure when a WithLimit budget is exhausted.
	ErrLimitExceeded = errors.New("memory limit exceeded")
)

func indexError(index, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, length)
}

func sizeError(what string, n int) error {
	return fmt.Errorf("%w: negative %s %d", ErrAllocationFailure, what, n)
}
