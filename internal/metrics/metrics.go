// Package metrics counts extraction activity on a private Prometheus
// registry. A CLI run has no scrape endpoint, so the registry is written to a
// node-exporter textfile when one is configured.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "remates"

// Chunk outcome label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Recorder holds the extraction metrics.
type Recorder struct {
	registry   *prometheus.Registry
	chunks     *prometheus.CounterVec
	retries    prometheus.Counter
	properties prometheus.Counter
	duplicates prometheus.Counter
	duration   prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Bulletin chunks sent to the extraction service, by outcome.",
		}, []string{"outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_retries_total",
			Help:      "Retries caused by transient extraction service errors.",
		}),
		properties: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "properties_extracted_total",
			Help:      "Properties extracted from bulletins.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_inputs_total",
			Help:      "Bulletin texts that had already been processed.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of a full extraction run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
	r.registry.MustRegister(r.chunks, r.retries, r.properties, r.duplicates, r.duration)
	r.chunks.WithLabelValues(OutcomeOK)
	r.chunks.WithLabelValues(OutcomeFailed)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ChunkDone counts one finished chunk and the items it produced.
func (r *Recorder) ChunkDone(_, _, items int, err error) {
	if err != nil {
		r.chunks.WithLabelValues(OutcomeFailed).Inc()
		return
	}
	r.chunks.WithLabelValues(OutcomeOK).Inc()
	r.properties.Add(float64(items))
}

// Retry counts one retry.
func (r *Recorder) Retry(_, _ int, _ time.Duration, _ error) {
	r.retries.Inc()
}

// DuplicateInput counts a bulletin that was already processed.
func (r *Recorder) DuplicateInput() {
	r.duplicates.Inc()
}

// ObserveRun records the duration of a run.
func (r *Recorder) ObserveRun(d time.Duration) {
	r.duration.Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
