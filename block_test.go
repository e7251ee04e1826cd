package dynarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	b, err := Allocate[int](NewAllocator(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Cap())
	assert.False(t, b.IsEmpty())
	for i := 0; i < b.Cap(); i++ {
		assert.Equal(t, 0, b.data[i])
	}
	b.Release()
}

func TestAllocate_Empty(t *testing.T) {
	mem := &faultyMemory{}
	b, err := Allocate[int](NewAllocator(WithMemory(mem)), 0)
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, 0, mem.allocs)
}

func TestAllocate_Negative(t *testing.T) {
	_, err := Allocate[int](NewAllocator(), -1)
	assert.ErrorIs(t, err, ErrAllocationFailure)
}

func TestAllocate_Overflow(t *testing.T) {
	al := NewAllocator()
	_, err := Allocate[[1 << 20]byte](al, math.MaxInt/2)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 0, al.Blocks())
}

func TestAllocate_FailureRetainsNothing(t *testing.T) {
	al := NewAllocator(WithLimit(8))
	b, err := Allocate[int64](al, 2)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, uintptr(0), al.InUse())
}

func TestBlock_Release(t *testing.T) {
	al := NewAllocator()
	b, err := Allocate[string](al, 3)
	require.NoError(t, err)
	b.data[0] = "held"

	b.Release()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, uintptr(0), al.InUse())

	// releasing an empty block does nothing
	b.Release()
	assert.Equal(t, 0, al.Blocks())

	var zero Block[string]
	assert.NotPanics(t, zero.Release)
}

func TestCopyRange(t *testing.T) {
	al := NewAllocator()
	src, err := Allocate[int](al, 4)
	require.NoError(t, err)
	dst, err := Allocate[int](al, 6)
	require.NoError(t, err)
	copy(src.data, []int{1, 2, 3, 4})

	CopyRange(src, 3, dst)
	assert.Equal(t, []int{1, 2, 3, 0, 0, 0}, dst.data)

	// the blocks stay independent
	src.data[0] = 100
	assert.Equal(t, 1, dst.data[0])

	src.Release()
	dst.Release()
}
