package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe"
	"github.com/hupe1980/bitframe/codec"
	"github.com/hupe1980/bitframe/frame"
	"github.com/hupe1980/bitframe/prommetrics"
	"github.com/hupe1980/bitframe/rowsource"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statsT implements the stats command: it loads every source and prints the
// value distribution of each dimension column.
type statsT struct {
	Cmd *cobra.Command

	dimensions  []string
	metrics     []string
	delimiter   string
	quoting     string
	emptyValue  string
	codecName   string
	top         int
	concurrency int
	prometheus  bool
	verbose     bool
	remote      remoteConfig
}

func newStatsCmd() *statsT {
	s := &statsT{}
	s.Cmd = &cobra.Command{
		Use:   "stats <sources>",
		Short: "print bitmap index statistics",
		Long: `
Load each source and print, per dimension column, the number of rows holding
each distinct value. A source is a local path, file://path, s3://bucket/key or
minio://bucket/key. Compressed input (gzip, zstd, lz4) is detected
automatically.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: s.run,
	}

	f := s.Cmd.Flags()
	f.StringSliceVarP(&s.dimensions, "dimensions", "d", nil, "dimension (categorical) columns to index")
	f.StringSliceVarP(&s.metrics, "metrics", "m", nil, "metric columns to collect")
	f.StringVar(&s.delimiter, "delimiter", ",", `field delimiter; "tab" or "\t" for tab`)
	f.StringVar(&s.quoting, "quoting", "auto", "field quoting: auto (quotes for ',' only), none or rfc4180")
	f.StringVar(&s.emptyValue, "empty-value", "", "value recorded for empty fields")
	f.StringVar(&s.codecName, "codec", "auto", "input compression: auto, none, gzip, zstd or lz4")
	f.IntVar(&s.top, "top", 10, "values shown per column (0 shows all)")
	f.IntVarP(&s.concurrency, "concurrency", "c", 4, "sources loaded in parallel")
	f.BoolVar(&s.prometheus, "prometheus", false, "print load metrics in Prometheus text format")
	f.BoolVarP(&s.verbose, "verbose", "v", false, "log loads to stderr")

	f.StringVar(&s.remote.s3Region, "s3-region", "", "AWS region for s3:// sources")
	f.BoolVar(&s.remote.s3Buffered, "s3-buffered", false, "download s3:// objects with parallel ranged GETs")
	f.StringVar(&s.remote.minioEndpoint, "minio-endpoint", "", "host:port of the MinIO server for minio:// sources")
	f.StringVar(&s.remote.minioAccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	f.StringVar(&s.remote.minioSecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	f.BoolVar(&s.remote.minioInsecure, "minio-insecure", false, "connect to MinIO without TLS")
	f.Int64Var(&s.remote.cacheBytes, "cache-bytes", 0, "cache remote objects in memory up to this many bytes")
	return s
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, errors.Newf("delimiter %q must be a single character", s)
	}
	return r, nil
}

func (s *statsT) loaderOptions(mc bitframe.MetricsCollector) ([]bitframe.Option, error) {
	delim, err := parseDelimiter(s.delimiter)
	if err != nil {
		return nil, err
	}

	quoting, err := rowsource.ParseQuoting(s.quoting)
	if err != nil {
		return nil, err
	}

	opts := []bitframe.Option{
		bitframe.WithDelimiter(delim),
		bitframe.WithQuoting(quoting),
		bitframe.WithEmptyValue(s.emptyValue),
		bitframe.WithMetricsCollector(mc),
	}
	if s.codecName != "auto" {
		c, err := codec.Parse(s.codecName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bitframe.WithCodec(c))
	}
	if s.verbose {
		opts = append(opts, bitframe.WithLogLevel(slog.LevelDebug))
	}
	return opts, nil
}

func (s *statsT) run(cmd *cobra.Command, args []string) error {
	if len(s.dimensions) == 0 && len(s.metrics) == 0 {
		return errors.New("at least one of --dimensions or --metrics is required")
	}

	sources := make([]source, len(args))
	for i, a := range args {
		src, err := parseSource(a)
		if err != nil {
			return err
		}
		sources[i] = src
	}

	var mc bitframe.MetricsCollector = bitframe.NoopMetricsCollector{}
	reg := prometheus.NewRegistry()
	if s.prometheus {
		c, err := prommetrics.New(reg, "bitframe")
		if err != nil {
			return err
		}
		mc = c
	}

	opts, err := s.loaderOptions(mc)
	if err != nil {
		return err
	}
	loader := bitframe.NewLoader(s.dimensions, s.metrics, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames, err := loadAll(ctx, loader, newStores(s.remote), sources, s.concurrency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, df := range frames {
		if err := s.printFrame(out, sources[i].raw, df); err != nil {
			return err
		}
	}

	if s.prometheus {
		return writeMetrics(out, reg)
	}
	return nil
}

// loadAll loads every source, at most concurrency at a time, and returns the
// frames in source order. The first failure cancels the remaining loads.
func loadAll(ctx context.Context, loader *bitframe.Loader, st *stores, sources []source, concurrency int) ([]*frame.DataFrame, error) {
	frames := make([]*frame.DataFrame, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			store, err := st.get(ctx, src)
			if err != nil {
				return err
			}
			df, err := loader.LoadBlob(ctx, store, src.key)
			if err != nil {
				return errors.Wrapf(err, "%s", src.raw)
			}
			frames[i] = df
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

func (s *statsT) printFrame(w io.Writer, name string, df *frame.DataFrame) error {
	fmt.Fprintf(w, "%s: %d rows\n", name, df.Rows())

	for _, col := range df.ColumnNames() {
		c, _ := df.Column(col)
		counts, err := c.Counts()
		if err != nil {
			return errors.Wrapf(err, "column %q", col)
		}
		slices.SortStableFunc(counts, func(a, b frame.ValueCount) int {
			return b.Rows - a.Rows
		})

		fmt.Fprintf(w, "\n%s (%d distinct)\n", col, c.Cardinality())
		tbl := newTable(w)
		tbl.SetHeader([]string{"Value", "Rows", "Share"})
		tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
		shown := counts
		if s.top > 0 && len(shown) > s.top {
			shown = shown[:s.top]
		}
		for _, vc := range shown {
			tbl.Append([]string{
				vc.Value,
				strconv.Itoa(vc.Rows),
				share(vc.Rows, c.Len()),
			})
		}
		if rest := len(counts) - len(shown); rest > 0 {
			tbl.SetFooter([]string{fmt.Sprintf("+%d more", rest), "", ""})
		}
		tbl.Render()
	}

	if names := df.MetricNames(); len(names) > 0 {
		fmt.Fprintln(w)
		tbl := newTable(w)
		tbl.SetHeader([]string{"Metric", "Rows", "Missing"})
		for _, name := range names {
			m, _ := df.Metric(name)
			tbl.Append([]string{name, strconv.Itoa(m.Len()), strconv.Itoa(m.Missing())})
		}
		tbl.Render()
	}
	fmt.Fprintln(w)
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetAutoFormatHeaders(false)
	return tbl
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
