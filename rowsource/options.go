package rowsource

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/codec"
)

// ErrInvalidDelimiter is returned for a delimiter that cannot separate fields.
var ErrInvalidDelimiter = errors.New("rowsource: invalid delimiter")

// Options configures a Reader.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// EmptyValue is returned for empty fields.
	EmptyValue string

	// Codec decompresses the input. Nil detects gzip, zstd and lz4 from the
	// leading bytes and falls back to plain text.
	Codec codec.Codec

	// Quoting selects how lines are split into fields. Defaults to QuoteAuto.
	Quoting Quoting

	// CheckInterval is the number of rows between context checks.
	CheckInterval int
}

// Quoting selects how a line is split into fields.
type Quoting int

const (
	// QuoteAuto uses QuoteRFC4180 for ',' and QuoteNone for any other delimiter.
	QuoteAuto Quoting = iota
	// QuoteNone splits every line on the delimiter. Quotes are ordinary
	// characters and a row never spans lines.
	QuoteNone
	// QuoteRFC4180 honors double-quoted fields, which may hold delimiters,
	// line breaks and doubled quotes.
	QuoteRFC4180
)

// ErrInvalidQuoting is returned for an unknown quoting mode.
var ErrInvalidQuoting = errors.New("rowsource: invalid quoting")

// ParseQuoting parses "auto", "none" or "rfc4180".
func ParseQuoting(s string) (Quoting, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return QuoteAuto, nil
	case "none", "raw":
		return QuoteNone, nil
	case "rfc4180", "csv":
		return QuoteRFC4180, nil
	}
	return 0, errors.Wrapf(ErrInvalidQuoting, "%q", s)
}

func (q Quoting) String() string {
	switch q {
	case QuoteAuto:
		return "auto"
	case QuoteNone:
		return "none"
	case QuoteRFC4180:
		return "rfc4180"
	}
	return "Quoting(" + strconv.Itoa(int(q)) + ")"
}

// quoted reports whether double quotes delimit fields.
func (o Options) quoted() bool {
	switch o.Quoting {
	case QuoteNone:
		return false
	case QuoteRFC4180:
		return true
	}
	return o.Delimiter == ','
}

// DefaultOptions are the options used when no option functions are given.
var DefaultOptions = Options{
	Delimiter:     ',',
	CheckInterval: 1024,
}

func (o Options) validate() error {
	d := o.Delimiter
	if d == 0 || d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError || !utf8.ValidRune(d) {
		return errors.Wrapf(ErrInvalidDelimiter, "%q", d)
	}
	if o.Quoting < QuoteAuto || o.Quoting > QuoteRFC4180 {
		return errors.Wrapf(ErrInvalidQuoting, "%d", int(o.Quoting))
	}
	return nil
}
