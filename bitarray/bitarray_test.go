package bitarray

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		length int
		words  int
	}{
		{0, 0},
		{1, 1},
		{63, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{1000, 16},
	}

	for _, tt := range tests {
		a, err := New(tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.length, a.Len())
		assert.Len(t, a.Words(), tt.words, "length %d", tt.length)
		assert.Zero(t, a.Count())
	}
}

func TestNew_NegativeLength(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Panics(t, func() { MustNew(-5) })
}

func TestSet(t *testing.T) {
	a := MustNew(200)

	for _, i := range []int{0, 1, 63, 64, 127, 128, 199} {
		require.NoError(t, a.Set(i, true))
		assert.True(t, a.Test(i), "bit %d", i)
	}
	assert.Equal(t, 7, a.Count())

	// Bits spread over every word, not folded into word 0.
	assert.Equal(t, uint64(1)|uint64(1)<<1|uint64(1)<<63, a.Words()[0])
	assert.Equal(t, uint64(1)|uint64(1)<<63, a.Words()[1])
	assert.Equal(t, uint64(1), a.Words()[2])
	assert.Equal(t, uint64(1)<<(199-192), a.Words()[3])

	require.NoError(t, a.Set(64, false))
	assert.False(t, a.Test(64))
	assert.True(t, a.Test(127))
	assert.Equal(t, 6, a.Count())

	// Clearing an unset bit is a no-op.
	require.NoError(t, a.Set(100, false))
	assert.Equal(t, 6, a.Count())
}

func TestSet_OutOfRange(t *testing.T) {
	a := MustNew(10)

	for _, i := range []int{-1, 10, 11, 1 << 20} {
		err := a.Set(i, true)
		require.Error(t, err, "index %d", i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}
	assert.Zero(t, a.Count())

	empty := MustNew(0)
	assert.True(t, errors.Is(empty.Set(0, true), ErrIndexOutOfRange))
}

func TestTest_OutOfRange(t *testing.T) {
	a := MustNew(10)
	require.NoError(t, a.Set(9, true))

	assert.False(t, a.Test(-1))
	assert.False(t, a.Test(10))
	assert.False(t, a.Test(64))
}

func TestSetByte(t *testing.T) {
	a := MustNew(20)

	require.NoError(t, a.SetByte(0, 0b1000_0001))
	assert.Equal(t, "10000001000000000000", a.String())

	require.NoError(t, a.SetByte(1, 0b0110_0000))
	assert.Equal(t, "10000001011000000000", a.String())

	// Overwrite, not OR.
	require.NoError(t, a.SetByte(0, 0b0000_0010))
	assert.Equal(t, "00000010011000000000", a.String())

	// Trailing slot covers bits 16..19 only.
	require.NoError(t, a.SetByte(2, 0b1010_0000))
	assert.Equal(t, "00000010011000001010", a.String())

	err := a.SetByte(2, 0b0000_1000)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	err = a.SetByte(3, 0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	err = a.SetByte(-1, 0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestSetByte_WordBoundary(t *testing.T) {
	a := MustNew(130)

	require.NoError(t, a.SetByte(7, 0xff))
	require.NoError(t, a.SetByte(8, 0x80))
	for i := 56; i < 65; i++ {
		assert.True(t, a.Test(i), "bit %d", i)
	}
	assert.False(t, a.Test(55))
	assert.False(t, a.Test(65))
	assert.Equal(t, 9, a.Count())
}

func TestIterator(t *testing.T) {
	a := MustNew(300)
	want := []int{0, 5, 63, 64, 65, 191, 255, 299}
	for _, i := range want {
		require.NoError(t, a.Set(i, true))
	}

	assert.Equal(t, want, slices.Collect(a.Iterator()))

	var firstTwo []int
	for i := range a.Iterator() {
		firstTwo = append(firstTwo, i)
		if len(firstTwo) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 5}, firstTwo)
}

func TestCloneEqual(t *testing.T) {
	a := MustNew(70)
	require.NoError(t, a.Set(3, true))
	require.NoError(t, a.Set(69, true))

	b := a.Clone()
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Set(4, true))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Test(4))

	assert.False(t, a.Equal(MustNew(71)))
	assert.False(t, a.Equal(nil))

	var none *BitArray
	assert.False(t, none.Equal(a))
	assert.True(t, none.Equal(nil))
}

func TestString(t *testing.T) {
	a := MustNew(5)
	require.NoError(t, a.Set(1, true))
	require.NoError(t, a.Set(4, true))
	assert.Equal(t, "01001", a.String())
	assert.Equal(t, "", MustNew(0).String())
}
