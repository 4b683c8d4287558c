// Package frame implements dictionary encoding and bitmap index construction
// for tabular data.
//
// A DataFrame holds two kinds of columns:
//
//   - Dimension columns (Column): each distinct value gets a dense code in
//     first-seen order; after ingestion FinalizeBitmaps expands the per-row
//     codes into one bitarray.BitArray per value. For N rows the bitmaps of
//     a column partition [0, N): every row is set in exactly one of them.
//   - Metrics (Metric): raw values kept in arrival order, never encoded.
//
// Typical use:
//
//	df := frame.New()
//	col := df.ColumnOrCreate("country")
//	col.Insert("de")
//	col.Insert("fr")
//	col.Insert("de")
//	_ = df.Finalize()
//	bm, _ := col.Bitmap("de") // "101"
//
// Nothing in this package is safe for concurrent mutation.
package frame
