package rowsource

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSchemaMismatch is matched by every *SchemaMismatchError.
var ErrSchemaMismatch = errors.New("rowsource: schema mismatch")

// SchemaMismatchError lists the requested names a header does not contain.
type SchemaMismatchError struct {
	Missing []string
	Header  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("rowsource: columns %s not in header [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Header, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// Schema maps the header's column names to field positions.
// When a name appears more than once the first position wins.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema creates a Schema from header names.
func NewSchema(names []string) *Schema {
	s := &Schema{
		names: slices.Clone(names),
		index: make(map[string]int, len(names)),
	}
	for i, n := range s.names {
		if _, ok := s.index[n]; !ok {
			s.index[n] = i
		}
	}
	return s
}

// Names returns the header names in order.
func (s *Schema) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of fields per row.
func (s *Schema) Len() int {
	return len(s.names)
}

// Index returns the position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Resolve returns the position of every name, in the order given.
// All missing names are reported together in a *SchemaMismatchError.
func (s *Schema) Resolve(names []string) ([]int, error) {
	pos := make([]int, len(names))
	var missing []string
	for i, n := range names {
		p, ok := s.index[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		pos[i] = p
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing, Header: s.Names()}
	}
	return pos, nil
}
