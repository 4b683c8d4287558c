package bitframe

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the prommetrics package).
type MetricsCollector interface {
	// RecordLoad is called after each load.
	// rows is the number of data rows read, duration is the total time taken,
	// err is nil if successful.
	RecordLoad(rows int, duration time.Duration, err error)

	// RecordFinalize is called after the bitmaps of one dimension column are built.
	RecordFinalize(column string, cardinality int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordFinalize(string, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadRows           atomic.Int64
	LoadTotalNanos     atomic.Int64
	FinalizeCount      atomic.Int64
	FinalizeTotalNanos atomic.Int64
	MaxCardinality     atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(rows int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadRows.Add(int64(rows))
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordFinalize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFinalize(_ string, cardinality int, duration time.Duration) {
	b.FinalizeCount.Add(1)
	b.FinalizeTotalNanos.Add(duration.Nanoseconds())
	for {
		cur := b.MaxCardinality.Load()
		if int64(cardinality) <= cur || b.MaxCardinality.CompareAndSwap(cur, int64(cardinality)) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:        b.LoadCount.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadRows:         b.LoadRows.Load(),
		LoadAvgNanos:     avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		FinalizeCount:    b.FinalizeCount.Load(),
		FinalizeAvgNanos: avg(b.FinalizeTotalNanos.Load(), b.FinalizeCount.Load()),
		MaxCardinality:   b.MaxCardinality.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount        int64
	LoadErrors       int64
	LoadRows         int64
	LoadAvgNanos     int64
	FinalizeCount    int64
	FinalizeAvgNanos int64
	MaxCardinality   int64
}
