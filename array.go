package dynarray

import "iter"

// Array is an owning dynamic array backed by exactly one Block.
//
// Copies are deep (Clone, CopyFrom), moves transfer the block and leave the source empty
// (Move, MoveFrom). Slots past Len are kept zeroed. The zero Array is an empty array on the
// default allocator. An Array is not safe for concurrent use.
type Array[T any] struct {
	block  Block[T]
	length int
	hooks  elemHooks
}

// NewArray creates an empty array. No memory is allocated until elements are added.
func NewArray[T any](al *Allocator) *Array[T] {
	return &Array[T]{block: Block[T]{allocator: al.orDefault()}}
}

// MakeArray creates an array of n zero-valued elements.
func MakeArray[T any](al *Allocator, n int) (*Array[T], error) {
	block, err := Allocate[T](al, n)
	if err != nil {
		return nil, err
	}
	return &Array[T]{block: block, length: n}, nil
}

// ArrayOf creates an array holding a copy of values, in order.
func ArrayOf[T any](al *Allocator, values ...T) (*Array[T], error) {
	a, err := MakeArray[T](al, len(values))
	if err != nil {
		return nil, err
	}
	if err = cloneInto(a.elemHooks(), a.block.data, values); err != nil {
		a.block.Release()
		return nil, err
	}
	return a, nil
}

// Len returns the current number of elements in the array.
func (a *Array[T]) Len() int {
	return a.length
}

// Cap returns the current capacity of the array.
func (a *Array[T]) Cap() int {
	return a.block.Cap()
}

// IsEmpty reports whether the array has no elements.
func (a *Array[T]) IsEmpty() bool {
	return a.length == 0
}

// At retrieves the element at the specified index.
func (a *Array[T]) At(index int) (T, error) {
	if index < 0 || index >= a.length {
		var zero T
		return zero, indexError(index, a.length)
	}
	return a.block.data[index], nil
}

// Ref returns a pointer to the element at index, for in-place updates.
// The pointer is invalidated by any operation that reallocates or releases the block.
func (a *Array[T]) Ref(index int) (*T, error) {
	if index < 0 || index >= a.length {
		return nil, indexError(index, a.length)
	}
	return &a.block.data[index], nil
}

// Set replaces the element at index.
func (a *Array[T]) Set(index int, v T) error {
	p, err := a.Ref(index)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Unchecked returns a pointer to slot index without comparing it to Len.
// Indexes in [Len, Cap) address dead slots; anything past Cap panics.
func (a *Array[T]) Unchecked(index int) *T {
	return &a.block.data[index]
}

// Range iterates over elements using a callback function.
func (a *Array[T]) Range(fn func(index int, v T) bool) {
	for i := 0; i < a.length; i++ {
		if !fn(i, a.block.data[i]) {
			return
		}
	}
}

// Iter provides an iterator function compatible with range loops.
//
// Example:
//
//	for index, v := range a.Iter() {
//		// do something
//	}
func (a *Array[T]) Iter() iter.Seq2[int, T] {
	return a.Range
}

// Values returns a new slice holding the live elements. Elements are copied by assignment.
func (a *Array[T]) Values() []T {
	out := make([]T, a.length)
	copy(out, a.live())
	return out
}

// Clone returns a deep copy of the array, allocated from the same allocator.
// The copy's capacity equals a.Len().
func (a *Array[T]) Clone() (*Array[T], error) {
	block, err := a.duplicate(a.allocator())
	if err != nil {
		return nil, err
	}
	return &Array[T]{block: block, length: a.length, hooks: a.hooks}, nil
}

// CopyFrom replaces the contents of a with a deep copy of src.
// The replacement is built before anything is released: on error a is unchanged.
func (a *Array[T]) CopyFrom(src *Array[T]) error {
	if a == src {
		return nil
	}
	block, err := src.duplicate(a.allocator())
	if err != nil {
		return err
	}
	a.swapIn(block, src.length)
	return nil
}

// Move transfers a's block to a new array and leaves a empty.
func (a *Array[T]) Move() *Array[T] {
	dst := &Array[T]{block: a.block, length: a.length, hooks: a.hooks}
	a.block = Block[T]{allocator: a.block.allocator}
	a.length = 0
	return dst
}

// MoveFrom frees a's elements and takes over src's block, leaving src empty.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Free()
	a.block, a.length = src.block, src.length
	src.block = Block[T]{allocator: src.block.allocator}
	src.length = 0
}

// Resize changes the length to n. Within capacity no memory moves: new elements are zero and
// discarded ones are freed. Beyond capacity the block is reallocated; if allocation or an element
// copy fails the array is left exactly as it was. Element types that implement Mover but not Cloner
// are moved regardless, and a failed Move leaves the elements intact in a larger block.
func (a *Array[T]) Resize(n int) error {
	if n < 0 {
		return sizeError("length", n)
	}
	if n > a.Cap() {
		if err := a.reallocate(calculateNewCap(a.Cap(), n)); err != nil {
			return err
		}
	}
	if n < a.length {
		freeValues(a.elemHooks(), a.block.data[n:a.length])
	} else {
		clear(a.block.data[a.length:n])
	}
	a.length = n
	return nil
}

// Reserve grows the capacity to at least n without changing the length. It never shrinks.
func (a *Array[T]) Reserve(n int) error {
	if n < 0 {
		return sizeError("capacity", n)
	}
	if n <= a.Cap() {
		return nil
	}
	return a.reallocate(n)
}

// ShrinkToFit reallocates the block so that Cap equals Len.
// It is the only operation that gives capacity back.
func (a *Array[T]) ShrinkToFit() error {
	if a.Cap() == a.length {
		return nil
	}
	return a.reallocate(a.length)
}

// Append adds copies of values to the end of the array.
func (a *Array[T]) Append(values ...T) error {
	required := a.length + len(values)
	if required > a.Cap() {
		if err := a.reallocate(calculateNewCap(a.Cap(), required)); err != nil {
			return err
		}
	}
	if err := cloneInto(a.elemHooks(), a.block.data[a.length:required], values); err != nil {
		return err
	}
	a.length = required
	return nil
}

// Assign replaces the contents with copies of values.
// When the length is unchanged and elements copy by assignment the block is reused;
// otherwise the replacement is built first and a is unchanged on error.
// Old elements that reappear in values are kept rather than freed.
func (a *Array[T]) Assign(values ...T) error {
	h := a.elemHooks()
	if len(values) == a.length && !h.cloner && !h.dynamic {
		live := a.live()
		freeDiscarded(h, live, values)
		copy(live, values)
		return nil
	}

	block, err := Allocate[T](a.allocator(), len(values))
	if err != nil {
		return err
	}
	if err = cloneInto(h, block.data, values); err != nil {
		block.Release()
		return err
	}
	a.swapIn(block, len(values))
	return nil
}

// Clear removes all elements and keeps the capacity.
func (a *Array[T]) Clear() {
	freeValues(a.elemHooks(), a.live())
	a.length = 0
}

// Free frees the elements, releases the block and leaves a empty and reusable.
func (a *Array[T]) Free() {
	if a == nil {
		return
	}
	a.Clear()
	a.block.Release()
}

func (a *Array[T]) live() []T {
	return a.block.data[:a.length]
}

func (a *Array[T]) allocator() *Allocator {
	return a.block.allocator.orDefault()
}

func (a *Array[T]) elemHooks() elemHooks {
	if !a.hooks.valid {
		a.hooks = hooksOf[T]()
	}
	return a.hooks
}

// duplicate builds a block from al holding a deep copy of the live elements.
func (a *Array[T]) duplicate(al *Allocator) (Block[T], error) {
	block, err := Allocate[T](al, a.length)
	if err != nil {
		return Block[T]{}, err
	}
	if err = cloneInto(a.elemHooks(), block.data, a.live()); err != nil {
		block.Release()
		return Block[T]{}, err
	}
	return block, nil
}

// swapIn installs a fully built block, then frees the old elements that did not carry over
// and the old block.
func (a *Array[T]) swapIn(block Block[T], length int) {
	old, oldLen := a.block, a.length
	a.block, a.length = block, length
	freeDiscarded(a.elemHooks(), old.data[:oldLen], a.live())
	old.Release()
}

// reallocate moves the live elements into a new block of the given capacity.
func (a *Array[T]) reallocate(capacity int) error {
	block, err := Allocate[T](a.allocator(), capacity)
	if err != nil {
		return err
	}

	h := a.elemHooks()
	live := a.live()
	copied, err := relocate(h, block.data, live)
	if err != nil && copied {
		block.Release()
		return err
	}
	if copied {
		freeValues(h, live)
	}

	old := a.block
	a.block = block
	old.Release()
	return err
}
