// Package rowsource reads delimiter-separated text as a restartable stream of
// rows.
//
// The first line is a header. It fixes the number of fields every data row
// must have and maps column names to positions once, so callers resolve the
// columns they need up front and then address fields by position:
//
//	r, err := rowsource.NewReader(rowsource.FromFile("sales.tsv.gz"), func(o *rowsource.Options) {
//	    o.Delimiter = '\t'
//	})
//	sc, err := r.Scan(ctx)
//	defer sc.Close()
//
//	pos, err := sc.Schema().Resolve([]string{"country", "revenue"})
//	for sc.Next() {
//	    rec := sc.Record()
//	    country, revenue := rec.Field(pos[0]), rec.Field(pos[1])
//	}
//	if err := sc.Err(); err != nil { ... }
//
// Every Scan reopens the underlying source, so a Reader can be iterated any
// number of times and yields the same rows each time. Compressed input (gzip,
// zstd, lz4) is detected from its magic bytes and decoded transparently.
package rowsource
