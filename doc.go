// Package bitframe builds dictionary-encoded bitmap indexes over delimited
// text.
//
// A Loader reads a header line, then routes every data row's declared
// dimension fields into per-column dictionaries and its metric fields into raw
// collectors. Once the input is exhausted each dimension column expands its
// per-row codes into one bitmap per distinct value, so "which rows hold value
// V" becomes a single lookup.
//
// # Quick Start
//
//	loader := bitframe.NewLoader([]string{"country", "device"}, []string{"revenue"})
//	df, err := loader.LoadFile(ctx, "sales.csv")
//	if err != nil { ... }
//
//	country, _ := df.Column("country")
//	de, _ := country.Bitmap("DE")        // *bitarray.BitArray, one bit per row
//	rows := de.Count()
//
//	revenue, _ := df.Metric("revenue")
//	raw := revenue.Values()              // strings in arrival order
//
// # Sources
//
// Input can come from any rowsource.Reader: local files (memory mapped),
// in-memory bytes, or a blobstore.Store such as S3 or MinIO. gzip, zstd and
// lz4 input is decompressed transparently.
//
//	store, _ := s3.New(ctx, "exports")
//	df, err := loader.LoadBlob(ctx, store, "2024/sales.tsv.zst")
//
// # Querying
//
// Bitmaps convert to roaring bitmaps for set algebra across columns:
//
//	de, _ := country.RoaringBitmap("DE")
//	mobile, _ := device.RoaringBitmap("mobile")
//	both := roaring.And(de, mobile)
//
// # Observability
//
// Loads report to a MetricsCollector (see prommetrics for Prometheus) and log
// through a slog-based Logger.
package bitframe
