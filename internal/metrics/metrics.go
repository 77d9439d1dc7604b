// Package metrics counts extraction outcomes and exports them as a
// Prometheus textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the messages counter.
const (
	OutcomeExtracted = "extracted"
	OutcomeDropped   = "dropped"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

const namespace = "swift_csv"

// Metrics holds the counters of one process or batch run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Messages      *prometheus.CounterVec
	Documents     *prometheus.CounterVec
	MissingCodes  *prometheus.CounterVec
	ExtractTiming prometheus.Histogram
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "SWIFT messages seen, by message type and outcome.",
		}, []string{"message_type", "outcome"}),
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "PDF documents processed, by status.",
		}, []string{"status"}),
		MissingCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_codes_total",
			Help:      "Records whose donor code was empty or unmapped.",
		}, []string{"kind"}),
		ExtractTiming: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_extraction_seconds",
			Help:      "Time spent extracting one PDF document.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}
	m.registry.MustRegister(m.Messages, m.Documents, m.MissingCodes, m.ExtractTiming)
	return m
}

// Message counts one message of type mt with the given outcome.
func (m *Metrics) Message(mt, outcome string) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(mt, outcome).Inc()
}

// Document counts one processed document.
func (m *Metrics) Document(status string) {
	if m == nil {
		return
	}
	m.Documents.WithLabelValues(status).Inc()
}

// Missing counts one record with an empty or unmapped donor code.
func (m *Metrics) Missing(kind string) {
	if m == nil {
		return
	}
	m.MissingCodes.WithLabelValues(kind).Inc()
}

// ObserveDocument records the extraction time of one document in seconds.
func (m *Metrics) ObserveDocument(seconds float64) {
	if m == nil {
		return
	}
	m.ExtractTiming.Observe(seconds)
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in the Prometheus text format, atomically
// replacing path, for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
