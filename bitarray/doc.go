// Package bitarray provides the fixed-length bit vector used for bitmap
// indexes, plus a sequential byte-packing writer.
//
// Addressing is fixed at 64-bit words on every platform:
//
//	word   = i / 64
//	offset = i % 64   // 0 is the least significant bit
//
// Usage:
//
//	a, _ := bitarray.New(1000)
//	_ = a.Set(42, true)
//	a.Test(42) // true
//
//	s, _ := bitarray.NewStream(3)
//	_ = s.Append(true)
//	_ = s.Append(false)
//	_ = s.Append(true)
//	b, _ := s.Finalize() // "101"
//
// A BitArray is not safe for concurrent mutation.
package bitarray
