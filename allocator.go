// Package dynarray provides owning containers whose storage is accounted against an explicit Allocator.
//
// An Array owns exactly one Block at a time and gives it value semantics: copies are deep, moves
// transfer the block and leave the source empty, and every mutation that can fail either completes
// or leaves the container as it was. A Handle is the single-slot, move-only variant of the same
// ownership discipline.
package dynarray

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/limpo1989/dynarray/internal"
)

const __align = unsafe.Sizeof(uintptr(0))

// maxAlloc bounds a single block request in bytes.
const maxAlloc = uintptr(math.MaxInt)

// allocatorOptions holds configuration settings for the Allocator
type allocatorOptions struct {
	memory  Memory
	locker  sync.Locker
	logger  Logger
	metrics MetricsCollector
}

// Option defines a function type for configuring Allocator parameters
type Option func(*allocatorOptions)

// WithMemory specifies a custom Memory the allocator draws its byte budget from.
// Default: heapMemory (unbounded Go heap).
func WithMemory(memory Memory) Option {
	return func(o *allocatorOptions) {
		o.memory = memory
	}
}

// WithLimit bounds the bytes the allocator may hand out at once.
// Requests beyond the limit fail with ErrAllocationFailure. It replaces any Memory set earlier.
func WithLimit(limit uintptr) Option {
	return func(o *allocatorOptions) {
		o.memory = &limitMemory{limit: limit}
	}
}

// WithEnableLock guards the allocator's accounting with a spinlock.
// Required when one Allocator is shared by containers living on different goroutines.
func WithEnableLock(enableLock bool) Option {
	return func(o *allocatorOptions) {
		if enableLock {
			o.locker = new(internal.SpinLock)
		} else {
			o.locker = nopLocker{}
		}
	}
}

// WithLogger sets the logger for the Allocator.
//
// Debug level: every block allocation and release with its size
// Warn level: allocation failures
func WithLogger(logger Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics collector for the Allocator.
// The collector receives allocation, release and failure counters plus the bytes in use.
func WithMetrics(collector MetricsCollector) Option {
	return func(o *allocatorOptions) {
		o.metrics = collector
	}
}

// Memory is the budget an Allocator draws from. Alloc either grants the full size or returns an error.
type Memory interface {
	Alloc(size uintptr) error
	Free(size uintptr)
}

// Allocator accounts storage blocks against a Memory budget.
// Blocks, Arrays and Handles created from the same Allocator share its budget.
type Allocator struct {
	locker  sync.Locker
	memory  Memory
	logger  Logger
	metrics MetricsCollector
	inUse   uintptr
	blocks  int
}

var defaultAllocator = NewAllocator(WithEnableLock(true))

// NewAllocator creates a new Allocator instance with customizable options.
func NewAllocator(ops ...Option) *Allocator {
	var opts = allocatorOptions{
		memory: heapMemory{},
		locker: nopLocker{},
	}
	for _, op := range ops {
		op(&opts)
	}

	return &Allocator{
		locker:  opts.locker,
		memory:  opts.memory,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
}

// InUse returns the number of bytes currently held by live blocks.
func (al *Allocator) InUse() uintptr {
	al = al.orDefault()
	al.locker.Lock()
	defer al.locker.Unlock()
	return al.inUse
}

// Blocks returns the number of live blocks.
func (al *Allocator) Blocks() int {
	al = al.orDefault()
	al.locker.Lock()
	defer al.locker.Unlock()
	return al.blocks
}

func (al *Allocator) orDefault() *Allocator {
	if al == nil {
		return defaultAllocator
	}
	return al
}

// reserve charges sz bytes for one block of elem values.
func (al *Allocator) reserve(sz uintptr, elem string) error {
	if sz == 0 {
		return nil
	}
	sz = fixSize(sz)

	al.locker.Lock()
	err := al.memory.Alloc(sz)
	if err == nil {
		al.inUse += sz
		al.blocks++
	}
	inUse := al.inUse
	al.locker.Unlock()

	if err != nil {
		al.logWarn(logMsgAllocationFailed, logAttrElem, elem, logAttrBytes, sz, logAttrError, err.Error())
		al.incrementCounter(metricAllocationFailures, elem)
		return fmt.Errorf("%w: %d bytes of %s: %w", ErrAllocationFailure, sz, elem, err)
	}

	al.logDebug(logMsgBlockAllocated, logAttrElem, elem, logAttrBytes, sz, logAttrInUse, inUse)
	al.incrementCounter(metricAllocations, elem)
	al.recordInUse(inUse)
	return nil
}

// release returns sz bytes previously charged by reserve.
func (al *Allocator) release(sz uintptr, elem string) {
	if sz == 0 {
		return
	}
	sz = fixSize(sz)

	al.locker.Lock()
	al.memory.Free(sz)
	al.inUse -= sz
	al.blocks--
	inUse := al.inUse
	al.locker.Unlock()

	al.logDebug(logMsgBlockReleased, logAttrElem, elem, logAttrBytes, sz, logAttrInUse, inUse)
	al.incrementCounter(metricReleases, elem)
	al.recordInUse(inUse)
}

// Sizeof 计算类型所占内存大小
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// calculateNewCap picks the capacity for a growing block: doubling while small, then 25% steps,
// and never less than required.
func calculateNewCap(current, required int) int {
	newCap := current * 2
	if current >= 256 {
		newCap = current + current/4
	}
	if newCap < required {
		newCap = required
	}
	return newCap
}

func fixSize(sz uintptr) uintptr {
	return (sz + __align - 1) &^ (__align - 1)
}

type heapMemory struct{}

func (h heapMemory) Alloc(size uintptr) error {
	return nil
}

func (h heapMemory) Free(size uintptr) {
}

// limitMemory is a fixed budget. Callers hold the allocator lock.
type limitMemory struct {
	limit uintptr
	used  uintptr
}

func (m *limitMemory) Alloc(size uintptr) error {
	if size > m.limit-m.used {
		return fmt.Errorf("%w: limit %d, in use %d, requested %d", ErrLimitExceeded, m.limit, m.used, size)
	}
	m.used += size
	return nil
}

func (m *limitMemory) Free(size uintptr) {
	if size > m.used {
		size = m.used
	}
	m.used -= size
}

type nopLocker struct{}

func (n nopLocker) Lock() {
}

func (n nopLocker) Unlock() {
}
