// Package codec centralizes decompression of delimited input.
//
// Sources may be stored raw or compressed with gzip, zstd or lz4 (frame
// format). Detect sniffs the magic bytes so callers rarely need to name a
// codec explicitly.
package codec

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownCodec is returned by Parse for unsupported codec names.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec wraps a compressed stream in a decompressing reader.
// Implementations must be safe for concurrent use.
type Codec interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
	Name() string
}

var (
	// None passes input through unchanged.
	None Codec = none{}
	// Gzip decompresses RFC 1952 streams.
	Gzip Codec = gzipCodec{}
	// Zstd decompresses Zstandard frames.
	Zstd Codec = zstdCodec{}
	// LZ4 decompresses LZ4 frames.
	LZ4 Codec = lz4Codec{}
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "none", "":
		return None, true
	case "gzip", "gz":
		return Gzip, true
	case "zstd", "zst":
		return Zstd, true
	case "lz4":
		return LZ4, true
	default:
		return nil, false
	}
}

// Parse is like ByName but returns an error for unknown names.
func Parse(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
	return c, nil
}

// Detect inspects the first bytes of br without consuming them.
// Input that matches no known magic is treated as uncompressed.
func Detect(br *bufio.Reader) Codec {
	head, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// Open wraps r with c, or with the detected codec if c is nil.
// Closing the result does not close r.
func Open(r io.Reader, c Codec) (io.ReadCloser, error) {
	if c == nil {
		br := bufio.NewReader(r)
		c = Detect(br)
		r = br
	}
	rc, err := c.NewReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "codec %s", c.Name())
	}
	return rc, nil
}

type none struct{}

func (none) NewReader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }
func (none) Name() string                                 { return "none" }

type gzipCodec struct{}

func (gzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}
func (gzipCodec) Name() string { return "gzip" }

type zstdCodec struct{}

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
func (zstdCodec) Name() string { return "zstd" }

type lz4Codec struct{}

func (lz4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
func (lz4Codec) Name() string { return "lz4" }
