package internal

import (
	"runtime"
	"sync/atomic"
)

const maxBackoff = 16

// SpinLock is a sync.Locker for very short critical sections such as the allocator's counters.
type SpinLock struct {
	state atomic.Int32
}

func (sl *SpinLock) Lock() {
	var backoff = 1
	for !sl.TryLock() {
		// Leverage the exponential backoff algorithm, see https://en.wikipedia.org/wiki/Exponential_backoff.
		for i := 0; i < backoff; i++ {
			runtime.Gosched()
		}
		if backoff < maxBackoff {
			backoff <<= 1
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (sl *SpinLock) TryLock() bool {
	return sl.state.CompareAndSwap(0, 1)
}

func (sl *SpinLock) Unlock() {
	sl.state.Store(0)
}
