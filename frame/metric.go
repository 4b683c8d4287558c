package frame

import "github.com/hupe1980/bitframe/bitarray"

// Metric keeps the raw values of a metric column in arrival order.
// Values are never encoded or indexed.
type Metric struct {
	values  []string
	missing []int // rows whose field was empty, ascending

	presence *bitarray.BitArray
}

// NewMetric creates an empty metric collector.
func NewMetric() *Metric {
	return &Metric{}
}

// Insert appends a raw value.
func (m *Metric) Insert(value string) {
	m.values = append(m.values, value)
}

// InsertMissing appends the empty-value sentinel for a row whose field was
// empty and records the row as missing.
func (m *Metric) InsertMissing(sentinel string) {
	m.missing = append(m.missing, len(m.values))
	m.values = append(m.values, sentinel)
}

// Values returns the raw values in arrival order. The slice must not be
// modified.
func (m *Metric) Values() []string {
	return m.values
}

// Len returns the number of rows.
func (m *Metric) Len() int {
	return len(m.values)
}

// Missing returns the number of rows whose field was empty.
func (m *Metric) Missing() int {
	return len(m.missing)
}

// Finalize packs the presence bitmap (bit i set iff row i had a value).
func (m *Metric) Finalize() error {
	if m.presence != nil && m.presence.Len() == len(m.values) {
		return nil
	}

	s, err := bitarray.NewStream(len(m.values))
	if err != nil {
		return err
	}
	next := 0
	for row := range m.values {
		present := true
		if next < len(m.missing) && m.missing[next] == row {
			present = false
			next++
		}
		if err := s.Append(present); err != nil {
			return err
		}
	}

	presence, err := s.Finalize()
	if err != nil {
		return err
	}
	m.presence = presence
	return nil
}

// Presence returns the bitmap of rows that carried a value.
func (m *Metric) Presence() (*bitarray.BitArray, error) {
	if m.presence == nil || m.presence.Len() != len(m.values) {
		return nil, ErrStaleBitmaps
	}
	return m.presence, nil
}
