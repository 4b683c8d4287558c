package bitframe

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/bitframe/blobstore"
	"github.com/hupe1980/bitframe/rowsource"
	"github.com/hupe1980/bitframe/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = "X,Y\na,1\nb,2\na,3\n"

func TestLoader_Scenario(t *testing.T) {
	r, err := rowsource.NewReader(rowsource.FromString(scenario))
	require.NoError(t, err)

	df, err := NewLoader([]string{"X"}, []string{"Y"}).Load(context.Background(), r)
	require.NoError(t, err)

	x, ok := df.Column("X")
	require.True(t, ok)

	code, ok := x.Dictionary().Code("a")
	require.True(t, ok)
	assert.Equal(t, uint32(0), code)
	code, ok = x.Dictionary().Code("b")
	require.True(t, ok)
	assert.Equal(t, uint32(1), code)
	assert.Equal(t, []uint32{0, 1, 0}, x.Codes())

	a, err := x.Bitmap("a")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, collectBits(a.Iterator()))

	b, err := x.Bitmap("b")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, collectBits(b.Iterator()))

	y, ok := df.Metric("Y")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3"}, y.Values())
}

func collectBits(seq func(func(int) bool)) []int {
	var out []int
	for i := range seq {
		out = append(out, i)
	}
	return out
}

func TestLoader_Partition(t *testing.T) {
	rng := testutil.NewRNG(42)
	header := []string{"lo", "hi", "m"}
	cards := []int{3, 200, 0}

	for _, n := range []int{0, 1, 63, 64, 65, 1000} {
		rows := rng.Table(n, cards)
		text := testutil.Delimited(',', header, rows)

		df, err := NewLoader([]string{"lo", "hi"}, []string{"m"}).
			LoadReader(context.Background(), rowsource.FromString(text))
		require.NoError(t, err)
		require.Equal(t, n, df.Rows())

		for j, name := range []string{"lo", "hi"} {
			c, ok := df.Column(name)
			require.True(t, ok)

			union := roaring.New()
			total := 0
			bitmaps, err := c.Bitmaps()
			require.NoError(t, err)
			for value, bm := range bitmaps {
				require.Equal(t, n, bm.Len())
				total += bm.Count()
				rb, err := bm.ToRoaring()
				require.NoError(t, err)
				require.False(t, union.Intersects(rb), "value %s overlaps", value)
				union.Or(rb)
			}
			assert.Equal(t, n, total)
			assert.Equal(t, uint64(n), union.GetCardinality())

			for i, row := range rows {
				bm, err := c.Bitmap(row[j])
				require.NoError(t, err)
				require.True(t, bm.Test(i))
			}
		}

		m, ok := df.Metric("m")
		require.True(t, ok)
		for i, row := range rows {
			require.Equal(t, row[2], m.Values()[i])
		}
	}
}

func TestLoader_DeclaredColumnsWithoutRows(t *testing.T) {
	df, err := NewLoader([]string{"X"}, []string{"Y"}).
		LoadReader(context.Background(), rowsource.FromString("X,Y\n"))
	require.NoError(t, err)

	x, ok := df.Column("X")
	require.True(t, ok)
	assert.Equal(t, 0, x.Len())
	assert.False(t, x.Stale())

	_, ok = df.Metric("Y")
	assert.True(t, ok)
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("SchemaMismatch", func(t *testing.T) {
		df, err := NewLoader([]string{"X", "Q"}, []string{"Y"}).LoadReader(ctx, rowsource.FromString(scenario))
		assert.Nil(t, df)
		assert.ErrorIs(t, err, ErrSchemaMismatch)

		var sme *SchemaMismatchError
		require.ErrorAs(t, err, &sme)
		assert.Equal(t, []string{"Q"}, sme.Missing)
	})

	t.Run("ShortRow", func(t *testing.T) {
		df, err := NewLoader([]string{"X"}, []string{"Y"}).LoadReader(ctx, rowsource.FromString("X,Y\na,1\nb\n"))
		assert.Nil(t, df)
		assert.ErrorIs(t, err, csv.ErrFieldCount)
	})

	t.Run("DuplicateMetric", func(t *testing.T) {
		_, err := NewLoader([]string{"X"}, []string{"Y", "Y"}).LoadReader(ctx, rowsource.FromString(scenario))
		assert.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("InvalidDelimiter", func(t *testing.T) {
		_, err := NewLoader([]string{"X"}, nil, WithDelimiter('\n')).LoadReader(ctx, rowsource.FromString(scenario))
		assert.ErrorIs(t, err, ErrInvalidDelimiter)
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		df, err := NewLoader([]string{"X"}, nil).LoadReader(canceled, rowsource.FromString(scenario))
		assert.Nil(t, df)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := NewLoader([]string{"X"}, nil).LoadBlob(ctx, blobstore.NewMemoryStore(), "missing.csv")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLoader_LoadFile(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("X|Y\na|\nb|2\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "input.csv.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	df, err := NewLoader([]string{"X"}, []string{"Y"}, WithDelimiter('|'), WithEmptyValue("-")).
		LoadFile(context.Background(), path)
	require.NoError(t, err)

	y, ok := df.Metric("Y")
	require.True(t, ok)
	assert.Equal(t, []string{"-", "2"}, y.Values())
	assert.Equal(t, 1, y.Missing())

	presence, err := y.Presence()
	require.NoError(t, err)
	assert.Equal(t, "01", presence.String())
}

func TestLoader_LoadBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "day1.csv", []byte(scenario)))

	loader := NewLoader([]string{"X"}, []string{"Y"})
	first, err := loader.LoadBlob(ctx, store, "day1.csv")
	require.NoError(t, err)
	second, err := loader.LoadBlob(ctx, store, "day1.csv")
	require.NoError(t, err)

	x1, _ := first.Column("X")
	x2, _ := second.Column("X")
	assert.Equal(t, x1.Codes(), x2.Codes())
}

func TestLoader_Observability(t *testing.T) {
	var logs bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	loader := NewLoader([]string{"X"}, []string{"Y"}, WithLogger(logger), WithMetricsCollector(metrics))

	_, err := loader.LoadReader(context.Background(), rowsource.FromString(scenario))
	require.NoError(t, err)
	_, err = loader.LoadReader(context.Background(), rowsource.FromString("X\n"))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
	assert.Equal(t, int64(3), stats.LoadRows)
	assert.Equal(t, int64(1), stats.FinalizeCount)
	assert.Equal(t, int64(2), stats.MaxCardinality)

	out := logs.String()
	assert.Contains(t, out, `"msg":"load completed"`)
	assert.Contains(t, out, `"msg":"finalize completed"`)
	assert.Contains(t, out, `"msg":"load failed"`)
	assert.Contains(t, out, `"source":"reader"`)
}

func TestLoader_NilOptions(t *testing.T) {
	loader := NewLoader([]string{"X"}, nil, WithLogger(nil), WithMetricsCollector(nil), nil)
	_, err := loader.LoadReader(context.Background(), rowsource.FromString(scenario))
	require.NoError(t, err)
}
