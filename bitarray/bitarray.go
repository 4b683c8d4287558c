package bitarray

import (
	"iter"
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// WordBits is the width of a storage word. It is fixed so the in-memory
	// layout is identical on every platform.
	WordBits = 64

	wordShift = 6 // log2(WordBits)
	wordMask  = WordBits - 1

	bytesPerWord = WordBits / 8
)

var (
	// ErrInvalidArgument is returned when a bit array is created with a negative length.
	ErrInvalidArgument = errors.New("bitarray: invalid argument")

	// ErrIndexOutOfRange is returned when a write addresses a bit outside [0, length).
	ErrIndexOutOfRange = errors.New("bitarray: index out of range")
)

// BitArray is a fixed-length bit vector packed into 64-bit words.
//
// Bit i lives in word i/64 at offset i%64 (offset 0 is the least significant
// bit). Bits at indices >= Len() are always zero.
type BitArray struct {
	length int
	words  []uint64
}

// New creates a zeroed BitArray holding length bits.
func New(length int) (*BitArray, error) {
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative length %d", length)
	}
	return &BitArray{
		length: length,
		words:  make([]uint64, wordsFor(length)),
	}, nil
}

// MustNew is like New but panics on a negative length.
func MustNew(length int) *BitArray {
	a, err := New(length)
	if err != nil {
		panic(err)
	}
	return a
}

func wordsFor(length int) int {
	return (length + WordBits - 1) >> wordShift
}

// Len returns the number of addressable bits.
func (a *BitArray) Len() int {
	return a.length
}

// Set sets (v == true) or clears (v == false) the bit at index i.
func (a *BitArray) Set(i int, v bool) error {
	if i < 0 || i >= a.length {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, a.length)
	}

	mask := uint64(1) << (uint(i) & wordMask)
	if v {
		a.words[i>>wordShift] |= mask
	} else {
		a.words[i>>wordShift] &^= mask
	}
	return nil
}

// Test reports whether the bit at index i is set.
// Out-of-range indices report false.
func (a *BitArray) Test(i int) bool {
	if i < 0 || i >= a.length {
		return false
	}
	return a.words[i>>wordShift]&(uint64(1)<<(uint(i)&wordMask)) != 0
}

// SetByte overwrites the 8 bits starting at bit 8*slot with b.
//
// b is read most significant bit first: bit 8*slot takes b's high bit and
// bit 8*slot+7 takes its low bit. Bits past Len() must be zero in b.
func (a *BitArray) SetByte(slot int, b byte) error {
	if slot < 0 || slot*8 >= a.length {
		return errors.Wrapf(ErrIndexOutOfRange, "byte slot %d, length %d", slot, a.length)
	}
	if rem := a.length - slot*8; rem < 8 && b&(0xff>>rem) != 0 {
		return errors.Wrapf(ErrIndexOutOfRange, "byte slot %d sets bits past length %d", slot, a.length)
	}

	shift := uint(slot%bytesPerWord) * 8
	w := &a.words[slot/bytesPerWord]
	*w = *w&^(uint64(0xff)<<shift) | uint64(bits.Reverse8(b))<<shift
	return nil
}

// Count returns the number of set bits.
func (a *BitArray) Count() int {
	n := 0
	for _, w := range a.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Iterator yields the indices of set bits in ascending order.
func (a *BitArray) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		for wi, w := range a.words {
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(wi<<wordShift + tz) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Words returns the backing words. The slice must not be modified.
func (a *BitArray) Words() []uint64 {
	return a.words
}

// Clone returns a deep copy.
func (a *BitArray) Clone() *BitArray {
	words := make([]uint64, len(a.words))
	copy(words, a.words)
	return &BitArray{length: a.length, words: words}
}

// Equal reports whether both arrays have the same length and bits.
// A nil array only equals another nil array.
func (a *BitArray) Equal(other *BitArray) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.length != other.length {
		return false
	}
	for i, w := range a.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// String renders one '0' or '1' per bit, index 0 first.
func (a *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(a.length)
	for i := 0; i < a.length; i++ {
		if a.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
