package rowsource

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/codec"
)

// ErrMissingHeader is returned when the input has no header line.
var ErrMissingHeader = errors.New("rowsource: missing header")

// Scanner walks the data rows of one pass over a source.
//
// Every line is a row, including empty ones: in a single-column source an
// empty line is a row with one empty field, anywhere else it is a row with
// the wrong number of fields.
type Scanner struct {
	ctx  context.Context
	opts Options

	src io.ReadCloser // raw source
	dec io.ReadCloser // decompressing view of src
	br  *bufio.Reader

	sep    string
	quoted bool

	line      int // last physical line consumed
	start     int // first line of the current row
	fieldsBuf []string

	schema *Schema
	rec    Record
	rows   int
	err    error
	done   bool
}

func newScanner(ctx context.Context, src io.ReadCloser, opts Options) (*Scanner, error) {
	dec, err := codec.Open(src, opts.Codec)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	s := &Scanner{
		ctx:    ctx,
		opts:   opts,
		src:    src,
		dec:    dec,
		br:     bufio.NewReader(dec),
		sep:    string(opts.Delimiter),
		quoted: opts.quoted(),
	}

	raw, err := s.readRecord()
	if err == nil && raw == "" {
		err = io.EOF
	}
	if err != nil {
		_ = s.Close()
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, err
	}

	header, err := s.split(strings.TrimPrefix(raw, "\ufeff"))
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	s.schema = NewSchema(header)
	s.rec = Record{schema: s.schema, empty: opts.EmptyValue}
	return s, nil
}

// readLine returns the next physical line without its line terminator.
func (s *Scanner) readLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	s.line++
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// readRecord returns the raw text of the next row. With quoting enabled a row
// continues onto following lines while a quoted field is open.
func (s *Scanner) readRecord() (string, error) {
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	s.start = s.line
	if !s.quoted {
		return line, nil
	}

	open := quoteOpen(line, s.opts.Delimiter, false)
	if !open {
		return line, nil
	}
	var sb strings.Builder
	sb.WriteString(line)
	for open {
		next, err := s.readLine()
		if errors.Is(err, io.EOF) {
			// Unterminated quote; the parser reports it.
			break
		}
		if err != nil {
			return "", err
		}
		sb.WriteByte('\n')
		sb.WriteString(next)
		open = quoteOpen(next, s.opts.Delimiter, true)
	}
	return sb.String(), nil
}

// quoteOpen reports whether a quoted field is still open at the end of line,
// given whether one was open at its start.
func quoteOpen(line string, delim rune, open bool) bool {
	atFieldStart := !open
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		i += size
		if open {
			if r == '"' {
				if strings.HasPrefix(line[i:], `"`) {
					i++
				} else {
					open = false
				}
			}
			continue
		}
		switch {
		case r == delim:
			atFieldStart = true
		case r == '"' && atFieldStart:
			open = true
			atFieldStart = false
		default:
			atFieldStart = false
		}
	}
	return open
}

// split breaks a raw row into fields. The result may be reused by the next
// call. A row without quotes splits the same way in both modes.
func (s *Scanner) split(raw string) ([]string, error) {
	if raw == "" {
		s.fieldsBuf = append(s.fieldsBuf[:0], "")
		return s.fieldsBuf, nil
	}

	if s.quoted && strings.Contains(raw, `"`) {
		r := csv.NewReader(strings.NewReader(raw))
		r.Comma = s.opts.Delimiter
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		fields, err := r.Read()
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				pe.StartLine += s.start - 1
				pe.Line += s.start - 1
			}
			return nil, err
		}
		return fields, nil
	}

	fields := s.fieldsBuf[:0]
	for {
		i := strings.Index(raw, s.sep)
		if i < 0 {
			break
		}
		fields = append(fields, raw[:i])
		raw = raw[i+len(s.sep):]
	}
	s.fieldsBuf = append(fields, raw)
	return s.fieldsBuf, nil
}

// Schema returns the header of the source.
func (s *Scanner) Schema() *Schema {
	return s.schema
}

// Next advances to the next data row. It returns false at the end of the
// input or on error; check Err to tell the two apart.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	if s.opts.CheckInterval > 0 && s.rows%s.opts.CheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.fail(err)
			return false
		}
	}

	raw, err := s.readRecord()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.done = true
			s.rec.fields = nil
			return false
		}
		s.fail(err)
		return false
	}

	fields, err := s.split(raw)
	if err != nil {
		s.fail(err)
		return false
	}
	if len(fields) != s.schema.Len() {
		s.fail(&csv.ParseError{StartLine: s.start, Line: s.start, Column: 1, Err: csv.ErrFieldCount})
		return false
	}

	s.rec.fields = fields
	s.rows++
	return true
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
	s.rec.fields = nil
}

// Record returns the current row. It is only valid until the next call to Next.
func (s *Scanner) Record() Record {
	return s.rec
}

// Err returns the error that stopped the scan, if any. Malformed rows are
// reported as *csv.ParseError; a row with the wrong number of fields wraps
// csv.ErrFieldCount.
func (s *Scanner) Err() error {
	return s.err
}

// Rows returns the number of data rows read so far.
func (s *Scanner) Rows() int {
	return s.rows
}

// Line returns the input line the current row starts on (the header is line 1).
func (s *Scanner) Line() int {
	if s.rec.fields == nil {
		return 0
	}
	return s.start
}

// Close releases the source. It is safe to call more than once.
func (s *Scanner) Close() error {
	s.done = true
	var err error
	if s.dec != nil {
		err = s.dec.Close()
		s.dec = nil
	}
	if s.src != nil {
		err = errors.CombineErrors(err, s.src.Close())
		s.src = nil
	}
	return err
}
