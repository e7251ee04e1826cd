package dynarray

// Handle exclusively owns a single value held in a one-slot Block.
// Ownership can be transferred with Move and MoveFrom but never duplicated.
// A Handle is not safe for concurrent use.
type Handle[T any] struct {
	block Block[T]
	hooks elemHooks
}

// NewHandle allocates a slot from al and stores v in it.
func NewHandle[T any](al *Allocator, v T) (*Handle[T], error) {
	block, err := Allocate[T](al, 1)
	if err != nil {
		return nil, err
	}
	block.data[0] = v
	return &Handle[T]{block: block, hooks: hooksOf[T]()}, nil
}

// EmptyHandle returns a handle that owns nothing.
func EmptyHandle[T any]() *Handle[T] {
	return &Handle[T]{}
}

// IsEmpty reports whether the handle owns no value.
func (h *Handle[T]) IsEmpty() bool {
	return h == nil || h.block.IsEmpty()
}

// Get returns a pointer to the owned value. Calling it on an empty handle panics.
func (h *Handle[T]) Get() *T {
	return &h.block.data[0]
}

// Move transfers the owned value to a new handle and leaves h empty.
func (h *Handle[T]) Move() *Handle[T] {
	dst := &Handle[T]{block: h.block, hooks: h.hooks}
	h.block = Block[T]{allocator: h.block.allocator}
	return dst
}

// MoveFrom frees h's value and takes over src's, leaving src empty.
func (h *Handle[T]) MoveFrom(src *Handle[T]) {
	if h == src {
		return
	}
	h.Free()
	h.block = src.block
	src.block = Block[T]{allocator: src.block.allocator}
}

// Reset replaces the owned value with v. The new slot is allocated before the old value is freed,
// so on error h still owns its previous value.
func (h *Handle[T]) Reset(v T) error {
	replacement, err := NewHandle(h.block.allocator, v)
	if err != nil {
		return err
	}
	h.MoveFrom(replacement)
	return nil
}

// Swap exchanges the values owned by h and other.
func (h *Handle[T]) Swap(other *Handle[T]) {
	h.block, other.block = other.block, h.block
}

// Free frees the owned value and leaves h empty. Freeing an empty handle is a no-op.
func (h *Handle[T]) Free() {
	if h.IsEmpty() {
		return
	}
	freeValues(h.elemHooks(), h.block.data)
	h.block.Release()
}

func (h *Handle[T]) elemHooks() elemHooks {
	if !h.hooks.valid {
		h.hooks = hooksOf[T]()
	}
	return h.hooks
}
