// Package oteladapters provides OpenTelemetry adapters for the dynarray observability interfaces.
package oteladapters

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/limpo1989/dynarray"
)

var _ dynarray.MetricsCollector = (*MetricsCollector)(nil)

// MetricsCollector implements dynarray.MetricsCollector using the OpenTelemetry metrics API:
//   - IncrementCounter -> Int64Counter (allocations, releases, failures)
//   - RecordValue -> Float64Gauge (bytes in use)
//
// Instruments are created on first use and cached; the collector is safe for concurrent use.
type MetricsCollector struct {
	mu       sync.Mutex
	meter    metric.Meter
	counters map[string]metric.Int64Counter
	gauges   map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a collector that creates its instruments from meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:    meter,
		counters: make(map[string]metric.Int64Counter),
		gauges:   make(map[string]metric.Float64Gauge),
	}
}

// IncrementCounter adds one to the named counter.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	counter := m.getOrCreateCounter(metricName)
	if counter == nil {
		return
	}
	counter.Add(context.Background(), 1, metric.WithAttributes(toAttributes(labels)...))
}

// RecordValue records the current value of the named gauge.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metricName)
	if gauge == nil {
		return
	}
	gauge.Record(context.Background(), value, metric.WithAttributes(toAttributes(labels)...))
}

func (m *MetricsCollector) getOrCreateCounter(name string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[name]; exists {
		return counter
	}

	counter, err := m.meter.Int64Counter(
		name,
		metric.WithDescription("dynarray allocator counter"),
	)
	if err != nil {
		return nil
	}

	m.counters[name] = counter
	return counter
}

func (m *MetricsCollector) getOrCreateGauge(name string) metric.Float64Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, exists := m.gauges[name]; exists {
		return gauge
	}

	gauge, err := m.meter.Float64Gauge(
		name,
		metric.WithDescription("dynarray allocator current value"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil
	}

	m.gauges[name] = gauge
	return gauge
}

func toAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}
	return attrs
}
