package frame

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/bitarray"
)

var (
	// ErrStaleBitmaps is returned when bitmaps are read before FinalizeBitmaps
	// ran, or after values were inserted since the last run.
	ErrStaleBitmaps = errors.New("frame: bitmaps not finalized")

	// ErrUnknownValue is returned when a bitmap is requested for a value the
	// column never saw.
	ErrUnknownValue = errors.New("frame: unknown value")
)

// Column dictionary-encodes a categorical column and, once ingestion is
// complete, expands the per-row codes into one bitmap per distinct value.
//
// Bitmaps only reflect the rows present when FinalizeBitmaps last ran.
// Inserting afterwards marks them stale until FinalizeBitmaps runs again,
// which rebuilds them from scratch.
type Column struct {
	dict *Dictionary
	data []uint32 // code per row, in ingestion order

	bitmaps   map[string]*bitarray.BitArray
	finalized int // rows covered by bitmaps; -1 before the first run
}

// NewColumn creates an empty column.
func NewColumn() *Column {
	return &Column{
		dict:      NewDictionary(),
		finalized: -1,
	}
}

// Insert appends one row holding value and returns its code.
func (c *Column) Insert(value string) uint32 {
	code := c.dict.Encode(value)
	c.data = append(c.data, code)
	return code
}

// FinalizeBitmaps builds the value -> bitmap index over all rows inserted
// so far. Running it again without new inserts keeps the published bitmaps.
func (c *Column) FinalizeBitmaps() error {
	n := len(c.data)
	if c.finalized == n {
		return nil
	}

	byCode := make([]*bitarray.BitArray, c.dict.Len())
	for code := range byCode {
		bm, err := bitarray.New(n)
		if err != nil {
			return err
		}
		byCode[code] = bm
	}

	for row, code := range c.data {
		if err := byCode[code].Set(row, true); err != nil {
			return errors.Wrapf(err, "row %d", row)
		}
	}

	bitmaps := make(map[string]*bitarray.BitArray, len(byCode))
	for code, value := range c.dict.Values() {
		bitmaps[value] = byCode[code]
	}

	c.bitmaps = bitmaps
	c.finalized = n
	return nil
}

// Stale reports whether the bitmaps are missing or out of date.
func (c *Column) Stale() bool {
	return c.finalized != len(c.data)
}

// Bitmap returns the bitmap of rows holding value.
func (c *Column) Bitmap(value string) (*bitarray.BitArray, error) {
	if c.Stale() {
		return nil, ErrStaleBitmaps
	}
	bm, ok := c.bitmaps[value]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownValue, "%q", value)
	}
	return bm, nil
}

// Bitmaps returns the complete value -> bitmap index. The map must not be
// modified.
func (c *Column) Bitmaps() (map[string]*bitarray.BitArray, error) {
	if c.Stale() {
		return nil, ErrStaleBitmaps
	}
	return c.bitmaps, nil
}

// RoaringBitmap returns the bitmap of rows holding value in roaring form.
func (c *Column) RoaringBitmap(value string) (*roaring.Bitmap, error) {
	bm, err := c.Bitmap(value)
	if err != nil {
		return nil, err
	}
	return bm.ToRoaring()
}

// ValueCount is the number of rows holding a value.
type ValueCount struct {
	Value string
	Rows  int
}

// Counts returns the row count of every distinct value in first-seen order.
func (c *Column) Counts() ([]ValueCount, error) {
	if c.Stale() {
		return nil, ErrStaleBitmaps
	}
	counts := make([]ValueCount, 0, c.dict.Len())
	for _, v := range c.dict.Values() {
		counts = append(counts, ValueCount{Value: v, Rows: c.bitmaps[v].Count()})
	}
	return counts, nil
}

// Len returns the number of rows inserted.
func (c *Column) Len() int {
	return len(c.data)
}

// Cardinality returns the number of distinct values.
func (c *Column) Cardinality() int {
	return c.dict.Len()
}

// Codes returns the per-row code sequence. The slice must not be modified.
func (c *Column) Codes() []uint32 {
	return c.data
}

// Dictionary returns the value dictionary backing the column.
func (c *Column) Dictionary() *Dictionary {
	return c.dict
}
