package dynarray

import (
	"fmt"
	"reflect"
)

// Block is a contiguous run of capacity slots charged against an Allocator.
// The zero Block is empty. A Block must have a single owner; copying the struct does not copy the slots.
type Block[T any] struct {
	allocator *Allocator
	data      []T
}

// Allocate obtains a block of exactly n zeroed slots. n == 0 yields an empty block without touching
// the allocator. On failure nothing is retained and the error wraps ErrAllocationFailure.
func Allocate[T any](al *Allocator, n int) (Block[T], error) {
	al = al.orDefault()
	if n < 0 {
		return Block[T]{}, sizeError("capacity", n)
	}
	if n == 0 {
		return Block[T]{allocator: al}, nil
	}

	elemSize := Sizeof[T]()
	if elemSize != 0 && uintptr(n) > maxAlloc/elemSize {
		return Block[T]{}, fmt.Errorf("%w: %d slots of %s overflow", ErrAllocationFailure, n, elemName[T]())
	}

	sz := elemSize * uintptr(n)
	if err := al.reserve(sz, elemName[T]()); err != nil {
		return Block[T]{}, err
	}

	data, err := makeSlots[T](n)
	if err != nil {
		al.release(sz, elemName[T]())
		return Block[T]{}, err
	}
	return Block[T]{allocator: al, data: data}, nil
}

// Release returns the block's memory to its allocator and leaves the block empty.
// Releasing an empty block is a no-op.
func (b *Block[T]) Release() {
	if b.data == nil {
		return
	}
	clear(b.data)
	b.allocator.release(Sizeof[T]()*uintptr(len(b.data)), elemName[T]())
	b.data = nil
}

// Cap returns the number of slots in the block.
func (b *Block[T]) Cap() int {
	return len(b.data)
}

// IsEmpty reports whether the block holds no memory.
func (b *Block[T]) IsEmpty() bool {
	return b.data == nil
}

// CopyRange copies the first count slots of src into dst.
// count must not exceed either capacity; overlap is not checked.
func CopyRange[T any](src Block[T], count int, dst Block[T]) {
	copy(dst.data[:count], src.data[:count])
}

// makeSlots turns the runtime's refusal to make a slice into an error.
func makeSlots[T any](n int) (data []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%w: %v", ErrAllocationFailure, r)
		}
	}()
	return make([]T, n), nil
}

func elemName[T any]() string {
	return reflect.TypeFor[T]().String()
}
