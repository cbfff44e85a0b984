// Package metrics provides ingest pipeline metrics for observability
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics contains Prometheus metrics for the sample ingest pipeline
type IngestMetrics struct {
	registry *prometheus.Registry

	// Row level metrics
	rowsParsedTotal  *prometheus.CounterVec
	rowsSkippedTotal *prometheus.CounterVec

	// Source level metrics
	sourcesProcessedTotal prometheus.Counter
	sourcesFailedTotal    prometheus.Counter

	// Aggregation metrics
	blocksEmittedTotal   prometheus.Counter
	resultsProducedTotal prometheus.Counter
}

// Skip reasons recorded on the rows_skipped counter.
const (
	SkipReasonShortRow     = "short_row"
	SkipReasonBadTimestamp = "bad_timestamp"
	SkipReasonBadLevel     = "bad_level"
	SkipReasonUnitMismatch = "unit_mismatch"
	SkipReasonParseError   = "parse_error"
)

// NewIngestMetrics creates and registers new ingest metrics
func NewIngestMetrics(registry *prometheus.Registry) (*IngestMetrics, error) {
	m := &IngestMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *IngestMetrics) initMetrics() {
	m.rowsParsedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_parsed_total",
			Help: "Total number of valid sample rows parsed",
		},
		[]string{"unit"},
	)

	m.rowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_skipped_total",
			Help: "Total number of sample rows skipped by reason",
		},
		[]string{"reason"},
	)

	m.sourcesProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_sources_processed_total",
			Help: "Total number of input sources processed",
		},
	)

	m.sourcesFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_sources_failed_total",
			Help: "Total number of input sources that could not be read",
		},
	)

	m.blocksEmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_blocks_emitted_total",
			Help: "Total number of aggregation blocks emitted",
		},
	)

	m.resultsProducedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_results_produced_total",
			Help: "Total number of Leq results produced",
		},
	)
}

// Describe implements the prometheus.Collector interface
func (m *IngestMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.rowsParsedTotal.Describe(ch)
	m.rowsSkippedTotal.Describe(ch)
	m.sourcesProcessedTotal.Describe(ch)
	m.sourcesFailedTotal.Describe(ch)
	m.blocksEmittedTotal.Describe(ch)
	m.resultsProducedTotal.Describe(ch)
}

// Collect implements the prometheus.Collector interface
func (m *IngestMetrics) Collect(ch chan<- prometheus.Metric) {
	m.rowsParsedTotal.Collect(ch)
	m.rowsSkippedTotal.Collect(ch)
	m.sourcesProcessedTotal.Collect(ch)
	m.sourcesFailedTotal.Collect(ch)
	m.blocksEmittedTotal.Collect(ch)
	m.resultsProducedTotal.Collect(ch)
}

// RecordRowParsed increments the parsed row counter for the given unit
func (m *IngestMetrics) RecordRowParsed(unit string) {
	m.rowsParsedTotal.WithLabelValues(unit).Inc()
}

// RecordRowSkipped increments the skipped row counter for the given reason
func (m *IngestMetrics) RecordRowSkipped(reason string) {
	m.rowsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordSourceProcessed increments the processed source counter
func (m *IngestMetrics) RecordSourceProcessed() {
	m.sourcesProcessedTotal.Inc()
}

// RecordSourceFailed increments the failed source counter
func (m *IngestMetrics) RecordSourceFailed() {
	m.sourcesFailedTotal.Inc()
}

// RecordBlockEmitted increments the emitted block counter
func (m *IngestMetrics) RecordBlockEmitted() {
	m.blocksEmittedTotal.Inc()
}

// RecordResultProduced increments the produced result counter
func (m *IngestMetrics) RecordResultProduced() {
	m.resultsProducedTotal.Inc()
}
