package bitarray

import "github.com/cockroachdb/errors"

// ErrStreamClosed is returned when a Stream is used after Finalize.
var ErrStreamClosed = errors.New("bitarray: stream finalized")

// Stream is an append-only writer that packs bits into a BitArray a byte at
// a time instead of masking every bit individually.
//
// A Stream is single use: once Finalize returns, the BitArray belongs to the
// caller and further calls fail with ErrStreamClosed.
type Stream struct {
	arr *BitArray

	slot      int   // current byte slot
	acc       byte  // partially filled byte
	remaining uint8 // free bits in acc; 8 means the byte has not started
	n         int   // bits appended so far
	closed    bool
}

// NewStream creates a Stream that fills a BitArray of length bits.
func NewStream(length int) (*Stream, error) {
	arr, err := New(length)
	if err != nil {
		return nil, err
	}
	return &Stream{arr: arr, remaining: 8}, nil
}

// Append writes the next bit.
func (s *Stream) Append(v bool) error {
	if s.closed {
		return ErrStreamClosed
	}
	if s.n >= s.arr.length {
		return errors.Wrapf(ErrIndexOutOfRange, "stream full at %d bits", s.arr.length)
	}

	s.remaining--
	if v {
		s.acc |= 1 << s.remaining
	}
	s.n++

	if s.remaining == 0 {
		if err := s.arr.SetByte(s.slot, s.acc); err != nil {
			return err
		}
		s.slot++
		s.acc = 0
		s.remaining = 8
	}
	return nil
}

// Len returns the number of bits appended so far.
func (s *Stream) Len() int {
	return s.n
}

// Finalize flushes a partially filled byte and returns the completed BitArray.
// Bits that were never appended stay zero.
func (s *Stream) Finalize() (*BitArray, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	s.closed = true

	if s.remaining < 8 {
		if err := s.arr.SetByte(s.slot, s.acc); err != nil {
			return nil, err
		}
	}

	arr := s.arr
	s.arr = nil
	return arr, nil
}
