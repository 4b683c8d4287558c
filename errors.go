package bitframe

import (
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/bitarray"
	"github.com/hupe1980/bitframe/blobstore"
	"github.com/hupe1980/bitframe/frame"
	"github.com/hupe1980/bitframe/rowsource"
)

// ErrDuplicateColumn is returned when a name is declared twice as a dimension
// or twice as a metric.
var ErrDuplicateColumn = errors.New("bitframe: duplicate column")

// Errors re-exported from the packages a load passes through, so callers can
// match them without importing those packages.
var (
	ErrInvalidArgument  = bitarray.ErrInvalidArgument
	ErrIndexOutOfRange  = bitarray.ErrIndexOutOfRange
	ErrSchemaMismatch   = rowsource.ErrSchemaMismatch
	ErrMissingHeader    = rowsource.ErrMissingHeader
	ErrInvalidDelimiter = rowsource.ErrInvalidDelimiter
	ErrInvalidQuoting   = rowsource.ErrInvalidQuoting
	ErrStaleBitmaps     = frame.ErrStaleBitmaps
	ErrUnknownValue     = frame.ErrUnknownValue
	ErrNotFound         = blobstore.ErrNotFound
)

// SchemaMismatchError lists declared columns missing from a source header.
type SchemaMismatchError = rowsource.SchemaMismatchError
