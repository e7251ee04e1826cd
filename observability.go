package dynarray

// Logger interface for allocation tracing and failure reporting. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting Allocator operational metrics.
type MetricsCollector interface {
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

const (
	metricAllocations        = "dynarray_allocations_total"
	metricAllocationFailures = "dynarray_allocation_failures_total"
	metricReleases           = "dynarray_releases_total"
	metricBytesInUse         = "dynarray_bytes_in_use"

	labelElem = "elem"
)

const (
	logMsgBlockAllocated   = "dynarray: block allocated"
	logMsgBlockReleased    = "dynarray: block released"
	logMsgAllocationFailed = "dynarray: allocation failed"

	logAttrElem  = "elem"
	logAttrBytes = "bytes"
	logAttrInUse = "in_use_bytes"
	logAttrError = "error"
)

func (al *Allocator) logDebug(msg string, args ...any) {
	if al.logger != nil {
		al.logger.Debug(msg, args...)
	}
}

func (al *Allocator) logWarn(msg string, args ...any) {
	if al.logger != nil {
		al.logger.Warn(msg, args...)
	}
}

func (al *Allocator) incrementCounter(metric, elem string) {
	if al.metrics != nil {
		al.metrics.IncrementCounter(metric, map[string]string{labelElem: elem})
	}
}

func (al *Allocator) recordInUse(inUse uintptr) {
	if al.metrics != nil {
		al.metrics.RecordValue(metricBytesInUse, float64(inUse), nil)
	}
}
