package frame

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Scenario(t *testing.T) {
	c := NewColumn()
	for _, v := range []string{"a", "b", "a"} {
		c.Insert(v)
	}

	assert.Equal(t, []uint32{0, 1, 0}, c.Codes())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Cardinality())

	require.NoError(t, c.FinalizeBitmaps())

	a, err := c.Bitmap("a")
	require.NoError(t, err)
	assert.Equal(t, "101", a.String())

	b, err := c.Bitmap("b")
	require.NoError(t, err)
	assert.Equal(t, "010", b.String())

	counts, err := c.Counts()
	require.NoError(t, err)
	assert.Equal(t, []ValueCount{{"a", 2}, {"b", 1}}, counts)
}

func TestColumn_PartitionProperty(t *testing.T) {
	rng := testutil.NewRNG(99)

	for _, n := range []int{1, 63, 64, 65, 1000, 4097} {
		values := rng.Categorical(n, 1+rng.Intn(30))

		c := NewColumn()
		for _, v := range values {
			c.Insert(v)
		}
		require.NoError(t, c.FinalizeBitmaps())

		bitmaps, err := c.Bitmaps()
		require.NoError(t, err)
		require.Len(t, bitmaps, c.Cardinality())

		total := 0
		union := roaring.New()
		for _, bm := range bitmaps {
			require.Equal(t, n, bm.Len())
			total += bm.Count()
			rb, err := bm.ToRoaring()
			require.NoError(t, err)
			require.False(t, union.Intersects(rb), "bitmaps must be disjoint")
			union.Or(rb)
		}
		assert.Equal(t, n, total)
		assert.Equal(t, uint64(n), union.GetCardinality())

		for row, v := range values {
			bm := bitmaps[v]
			require.True(t, bm.Test(row), "n=%d row %d value %q", n, row, v)
		}
	}
}

func TestColumn_Stale(t *testing.T) {
	c := NewColumn()
	c.Insert("x")

	assert.True(t, c.Stale())
	_, err := c.Bitmap("x")
	assert.True(t, errors.Is(err, ErrStaleBitmaps))
	_, err = c.Bitmaps()
	assert.True(t, errors.Is(err, ErrStaleBitmaps))
	_, err = c.Counts()
	assert.True(t, errors.Is(err, ErrStaleBitmaps))

	require.NoError(t, c.FinalizeBitmaps())
	assert.False(t, c.Stale())

	first, err := c.Bitmap("x")
	require.NoError(t, err)

	// No new rows: the published bitmaps are kept.
	require.NoError(t, c.FinalizeBitmaps())
	again, err := c.Bitmap("x")
	require.NoError(t, err)
	assert.Same(t, first, again)

	c.Insert("y")
	assert.True(t, c.Stale())
	_, err = c.Bitmap("x")
	assert.True(t, errors.Is(err, ErrStaleBitmaps))

	require.NoError(t, c.FinalizeBitmaps())
	x, err := c.Bitmap("x")
	require.NoError(t, err)
	assert.Equal(t, "10", x.String())
	y, err := c.Bitmap("y")
	require.NoError(t, err)
	assert.Equal(t, "01", y.String())
}

func TestColumn_UnknownValue(t *testing.T) {
	c := NewColumn()
	c.Insert("x")
	require.NoError(t, c.FinalizeBitmaps())

	_, err := c.Bitmap("nope")
	assert.True(t, errors.Is(err, ErrUnknownValue))

	_, err = c.RoaringBitmap("nope")
	assert.True(t, errors.Is(err, ErrUnknownValue))
}

func TestColumn_Empty(t *testing.T) {
	c := NewColumn()
	require.NoError(t, c.FinalizeBitmaps())

	bitmaps, err := c.Bitmaps()
	require.NoError(t, err)
	assert.Empty(t, bitmaps)
	assert.Zero(t, c.Len())
}

func TestColumn_RoaringBitmap(t *testing.T) {
	c := NewColumn()
	for i := 0; i < 200; i++ {
		if i%3 == 0 {
			c.Insert("fizz")
		} else {
			c.Insert("other")
		}
	}
	require.NoError(t, c.FinalizeBitmaps())

	rb, err := c.RoaringBitmap("fizz")
	require.NoError(t, err)
	assert.Equal(t, uint64(67), rb.GetCardinality())
	assert.True(t, rb.Contains(198))
	assert.False(t, rb.Contains(199))
}
