package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bools returns n pseudo-random booleans.
func (r *RNG) Bools(n int) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Intn(2) == 1
	}
	return out
}

// Categorical returns n values drawn uniformly from cardinality distinct
// labels ("v0", "v1", ...). Not every label is guaranteed to appear.
func (r *RNG) Categorical(n, cardinality int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = "v" + strconv.Itoa(r.rand.Intn(cardinality))
	}
	return out
}

// Table returns n rows of width columns, column j drawn from cardinalities[j]
// labels. A cardinality <= 0 yields integer metric-like values.
func (r *RNG) Table(n int, cardinalities []int) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, len(cardinalities))
		for j, c := range cardinalities {
			if c <= 0 {
				row[j] = strconv.Itoa(r.rand.Intn(1_000_000))
			} else {
				row[j] = "v" + strconv.Itoa(r.rand.Intn(c))
			}
		}
		rows[i] = row
	}
	return rows
}

// Delimited renders a header line followed by rows, each terminated by '\n'.
func Delimited(delim rune, header []string, rows [][]string) string {
	var sb strings.Builder
	sep := string(delim)
	sb.WriteString(strings.Join(header, sep))
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString(strings.Join(row, sep))
		sb.WriteByte('\n')
	}
	return sb.String()
}
