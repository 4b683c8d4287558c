package bitarray

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
)

// MaxRoaringLen is the largest length ToRoaring accepts. Roaring members are
// uint32, so bit indices must stay below 2^32.
const MaxRoaringLen int64 = 1 << 32

// ErrTooLarge is returned by ToRoaring for arrays longer than MaxRoaringLen.
var ErrTooLarge = errors.New("bitarray: too large for roaring")

// ToRoaring converts the set bits into a compressed roaring bitmap, which is
// what downstream query code uses for AND/OR/NOT across columns.
//
// It fails with ErrTooLarge if the array holds more than MaxRoaringLen bits.
func (a *BitArray) ToRoaring() (*roaring.Bitmap, error) {
	if int64(a.length) > MaxRoaringLen {
		return nil, errors.Wrapf(ErrTooLarge, "length %d", a.length)
	}

	rb := roaring.New()
	for wi, w := range a.words {
		if w == 0 {
			continue
		}
		base := uint32(wi << wordShift)
		for w != 0 {
			rb.Add(base + uint32(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return rb, nil
}

// FromRoaring materializes rb as a BitArray of the given length.
// Every member of rb must be below length.
func FromRoaring(rb *roaring.Bitmap, length int) (*BitArray, error) {
	a, err := New(length)
	if err != nil {
		return nil, err
	}
	if !rb.IsEmpty() && int64(rb.Maximum()) >= int64(length) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "roaring member %d, length %d", rb.Maximum(), length)
	}

	it := rb.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		a.words[i>>wordShift] |= uint64(1) << (uint(i) & wordMask)
	}
	return a, nil
}
