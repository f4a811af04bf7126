// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Driver metrics.
	MetricTranscodes   = "transcode_calls_total"
	MetricErrors       = "transcode_errors_total"
	MetricBytesIn      = "transcode_bytes_in_total"
	MetricBytesOut     = "transcode_bytes_out_total"
	MetricSegments     = "transcode_segments_total"
	MetricProcessCalls = "transcode_process_calls_total"
	MetricBufferGrows  = "transcode_buffer_grows_total"
	MetricDuration     = "transcode_duration_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
