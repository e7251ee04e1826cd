package dynarray

import (
	"errors"
	"fmt"
	"sync"
)

var errInjected = errors.New("injected fault")

// faultyMemory grants every request until fail is set.
type faultyMemory struct {
	fail   bool
	allocs int
	frees  int
}

func (m *faultyMemory) Alloc(size uintptr) error {
	if m.fail {
		return errInjected
	}
	m.allocs++
	return nil
}

func (m *faultyMemory) Free(size uintptr) {
	m.frees++
}

type logEntry struct {
	level string
	msg   string
}

type loggerSpy struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *loggerSpy) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg})
}

func (l *loggerSpy) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *loggerSpy) Info(msg string, _ ...any) { l.add("info", msg) }
func (l *loggerSpy) Warn(msg string, _ ...any) { l.add("warn", msg) }
func (l *loggerSpy) Error(msg string, _ ...any) { l.add("error", msg) }

type metricsSpy struct {
	counters map[string]int
	values   map[string]float64
}

func newMetricsSpy() *metricsSpy {
	return &metricsSpy{counters: map[string]int{}, values: map[string]float64{}}
}

func (m *metricsSpy) IncrementCounter(metric string, labels map[string]string) {
	m.counters[metric+"/"+labels[labelElem]]++
}

func (m *metricsSpy) RecordValue(metric string, value float64, _ map[string]string) {
	m.values[metric] = value
}

// resource counts how many times it was freed.
type resource struct {
	id    int
	freed *int
}

func (r *resource) Free() {
	*r.freed++
}

// cloneable copies itself through Clone and can be told to fail.
type cloneable struct {
	v       int
	failing bool
	clones  *int
}

func (c cloneable) Clone() (cloneable, error) {
	if c.failing {
		return cloneable{}, fmt.Errorf("clone %d: %w", c.v, errInjected)
	}
	if c.clones != nil {
		*c.clones++
	}
	return cloneable{v: c.v, clones: c.clones}, nil
}

// fragile has a transfer that may fail and a copy that may fail.
type fragile struct {
	v         int
	failClone bool
}

func (f fragile) Move() (fragile, error) {
	return f, nil
}

func (f fragile) Clone() (fragile, error) {
	if f.failClone {
		return fragile{}, errInjected
	}
	return fragile{v: f.v}, nil
}

// moveOnly has a transfer that may fail and no Clone.
type moveOnly struct {
	v        int
	failMove bool
}

func (m moveOnly) Move() (moveOnly, error) {
	if m.failMove {
		return moveOnly{}, errInjected
	}
	return moveOnly{v: m.v * 10}, nil
}
