package dynarray

import "reflect"

// Cloner is implemented by element types whose copy is more than a value assignment,
// typically because they own a resource of their own. Clone returns an independent copy.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Mover is implemented by element types whose transfer to a new slot can fail.
// Containers relocating such elements copy them instead, so a failure cannot damage the originals.
type Mover[T any] interface {
	Move() (T, error)
}

// Freer is implemented by values that hold resources. Containers call Free on the values they discard.
// *Array and *Handle are Freers, so nested containers are released with their owner.
type Freer interface {
	Free()
}

var freerType = reflect.TypeFor[Freer]()

// elemHooks records which element interfaces T satisfies.
// For interface element types the answer depends on each value, so dynamic is set instead.
type elemHooks struct {
	valid   bool
	dynamic bool
	cloner  bool
	mover   bool
	freer   bool
}

func hooksOf[T any]() elemHooks {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		return elemHooks{valid: true, dynamic: true}
	}
	return elemHooks{
		valid:  true,
		cloner: t.Implements(reflect.TypeFor[Cloner[T]]()),
		mover:  t.Implements(reflect.TypeFor[Mover[T]]()),
		freer:  t.Implements(freerType),
	}
}

// cloneInto copies src into dst element by element. On error the clones already made are freed;
// values carried over by assignment still belong to src and are only zeroed in dst.
func cloneInto[T any](h elemHooks, dst, src []T) error {
	if !h.cloner && !h.dynamic {
		copy(dst, src)
		return nil
	}
	for i := range src {
		c, ok := any(src[i]).(Cloner[T])
		if !ok {
			dst[i] = src[i]
			continue
		}
		v, err := c.Clone()
		if err != nil {
			freeClones(dst[:i], src[:i])
			return err
		}
		dst[i] = v
	}
	return nil
}

// freeClones frees the slots of dst that were produced by cloning src, then zeroes dst.
func freeClones[T any](dst, src []T) {
	for i := range dst {
		if _, cloned := any(src[i]).(Cloner[T]); !cloned {
			continue
		}
		if f, ok := any(dst[i]).(Freer); ok && !isNilPointer(f) {
			f.Free()
		}
	}
	clear(dst)
}

// freeValues frees every Freer in s and zeroes the slots.
func freeValues[T any](h elemHooks, s []T) {
	if h.freer || h.dynamic {
		for i := range s {
			if f, ok := any(s[i]).(Freer); ok && !isNilPointer(f) {
				f.Free()
			}
		}
	}
	clear(s)
}

// freeDiscarded frees the Freers in old that do not reappear in kept, then zeroes old.
// It is used when old contents are replaced by values that may include some of them.
func freeDiscarded[T any](h elemHooks, old, kept []T) {
	if h.freer || h.dynamic {
		for i := range old {
			f, ok := any(old[i]).(Freer)
			if !ok || isNilPointer(f) || containsFreer(kept, f) {
				continue
			}
			f.Free()
		}
	}
	clear(old)
}

func containsFreer[T any](s []T, f Freer) bool {
	t := reflect.TypeOf(f)
	if !t.Comparable() {
		return false
	}
	for i := range s {
		if v, ok := any(s[i]).(Freer); ok && reflect.TypeOf(v) == t && v == f {
			return true
		}
	}
	return false
}

func mayFailMove[T any](h elemHooks, s []T) bool {
	if !h.dynamic {
		return h.mover
	}
	for i := range s {
		if _, ok := any(s[i]).(Mover[T]); ok {
			return true
		}
	}
	return false
}

func allCloneable[T any](h elemHooks, s []T) bool {
	if !h.dynamic {
		return h.cloner
	}
	for i := range s {
		if _, ok := any(s[i]).(Cloner[T]); !ok {
			return false
		}
	}
	return true
}

// relocate transfers live into dst, choosing move or copy per element type:
//
//   - elements whose transfer cannot fail are moved and their old slots zeroed;
//   - fallible movers that can be cloned are copied, and live is left untouched;
//   - fallible movers that cannot be cloned are moved anyway. On failure the remaining
//     elements are carried over by assignment so nothing is lost.
//
// copied reports whether live still owns its values.
func relocate[T any](h elemHooks, dst, live []T) (copied bool, err error) {
	if !mayFailMove(h, live) {
		copy(dst, live)
		clear(live)
		return false, nil
	}

	if allCloneable(h, live) {
		return true, cloneInto(h, dst, live)
	}

	var zero T
	for i := range live {
		m, ok := any(live[i]).(Mover[T])
		if !ok {
			dst[i] = live[i]
			live[i] = zero
			continue
		}
		v, err := m.Move()
		if err != nil {
			copy(dst[i:], live[i:])
			clear(live)
			return false, err
		}
		dst[i] = v
		live[i] = zero
	}
	return false, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
