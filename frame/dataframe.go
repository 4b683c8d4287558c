package frame

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// DataFrame is a named set of dimension columns and metric collectors.
// It owns every column and metric it holds.
type DataFrame struct {
	columns map[string]*Column
	metrics map[string]*Metric

	columnNames []string
	metricNames []string
}

// New creates an empty DataFrame.
func New() *DataFrame {
	return &DataFrame{
		columns: make(map[string]*Column),
		metrics: make(map[string]*Metric),
	}
}

// Column returns the dimension column called name.
func (df *DataFrame) Column(name string) (*Column, bool) {
	c, ok := df.columns[name]
	return c, ok
}

// ColumnOrCreate returns the dimension column called name, creating an empty
// one first if it does not exist.
func (df *DataFrame) ColumnOrCreate(name string) *Column {
	if c, ok := df.columns[name]; ok {
		return c
	}
	c := NewColumn()
	df.columns[name] = c
	df.columnNames = append(df.columnNames, name)
	return c
}

// Metric returns the metric called name.
func (df *DataFrame) Metric(name string) (*Metric, bool) {
	m, ok := df.metrics[name]
	return m, ok
}

// MetricOrCreate returns the metric called name, creating an empty one first
// if it does not exist.
func (df *DataFrame) MetricOrCreate(name string) *Metric {
	if m, ok := df.metrics[name]; ok {
		return m
	}
	m := NewMetric()
	df.metrics[name] = m
	df.metricNames = append(df.metricNames, name)
	return m
}

// ColumnNames returns dimension column names in creation order.
func (df *DataFrame) ColumnNames() []string {
	return slices.Clone(df.columnNames)
}

// MetricNames returns metric names in creation order.
func (df *DataFrame) MetricNames() []string {
	return slices.Clone(df.metricNames)
}

// Rows returns the largest row count over all columns and metrics.
func (df *DataFrame) Rows() int {
	n := 0
	for _, c := range df.columns {
		n = max(n, c.Len())
	}
	for _, m := range df.metrics {
		n = max(n, m.Len())
	}
	return n
}

// Finalize builds the bitmaps of every dimension column, then the presence
// bitmap of every metric.
func (df *DataFrame) Finalize() error {
	for _, name := range df.columnNames {
		if err := df.columns[name].FinalizeBitmaps(); err != nil {
			return errors.Wrapf(err, "column %q", name)
		}
	}
	for _, name := range df.metricNames {
		if err := df.metrics[name].Finalize(); err != nil {
			return errors.Wrapf(err, "metric %q", name)
		}
	}
	return nil
}
