package dynarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHooksOf(t *testing.T) {
	assert.Equal(t, elemHooks{valid: true}, hooksOf[int]())
	assert.Equal(t, elemHooks{valid: true, cloner: true}, hooksOf[cloneable]())
	assert.Equal(t, elemHooks{valid: true, cloner: true, mover: true}, hooksOf[fragile]())
	assert.Equal(t, elemHooks{valid: true, mover: true}, hooksOf[moveOnly]())
	assert.Equal(t, elemHooks{valid: true, freer: true}, hooksOf[*resource]())
	assert.Equal(t, elemHooks{valid: true, freer: true}, hooksOf[*Handle[int]]())
	assert.Equal(t, elemHooks{valid: true, cloner: true, freer: true}, hooksOf[*Array[int]]())
	assert.Equal(t, elemHooks{valid: true, dynamic: true}, hooksOf[any]())
	assert.Equal(t, elemHooks{valid: true, dynamic: true}, hooksOf[Freer]())
}

func TestCloneIntoFreesPartialCopies(t *testing.T) {
	freed := 0
	src := []any{freeingCloner{freed: &freed}, freeingCloner{freed: &freed}, failingCloner{}}
	dst := make([]any, len(src))

	err := cloneInto(hooksOf[any](), dst, src)
	assert.ErrorIs(t, err, errInjected)
	assert.Equal(t, 2, freed)
	assert.Equal(t, []any{nil, nil, nil}, dst)
}

type freeingCloner struct {
	freed *int
}

func (c freeingCloner) Clone() (any, error) { return c, nil }

func (c freeingCloner) Free() { *c.freed++ }

type failingCloner struct{}

func (failingCloner) Clone() (any, error) { return nil, errInjected }
