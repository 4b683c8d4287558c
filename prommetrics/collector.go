// Package prommetrics exports loader metrics to Prometheus.
package prommetrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements bitframe.MetricsCollector on top of Prometheus metrics.
type Collector struct {
	loads             *prometheus.CounterVec
	rows              prometheus.Counter
	loadLatency       *prometheus.HistogramVec
	finalizeLatency   prometheus.Histogram
	columnCardinality *prometheus.GaugeVec
}

// New creates a Collector and registers its metrics with reg.
// Metric names are prefixed with namespace when it is not empty.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Completed loads by status.",
		}, []string{"status"}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Data rows read by all loads.",
		}),
		loadLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Wall time of a load, including bitmap construction.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		finalizeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "finalize_duration_seconds",
			Help:      "Time to build the bitmaps of one dimension column.",
			Buckets:   prometheus.DefBuckets,
		}),
		columnCardinality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "column_cardinality",
			Help:      "Distinct values of a dimension column in the latest load.",
		}, []string{"column"}),
	}

	for _, m := range []prometheus.Collector{c.loads, c.rows, c.loadLatency, c.finalizeLatency, c.columnCardinality} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "prommetrics: register")
		}
	}
	return c, nil
}

// RecordLoad implements bitframe.MetricsCollector.
func (c *Collector) RecordLoad(rows int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.loads.WithLabelValues(status).Inc()
	c.rows.Add(float64(rows))
	c.loadLatency.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordFinalize implements bitframe.MetricsCollector.
func (c *Collector) RecordFinalize(column string, cardinality int, duration time.Duration) {
	c.finalizeLatency.Observe(duration.Seconds())
	c.columnCardinality.WithLabelValues(column).Set(float64(cardinality))
}
