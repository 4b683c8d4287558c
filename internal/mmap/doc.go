// Package mmap maps local input files read-only into memory so the row
// source can scan them without copying through read(2) buffers.
//
// Usage:
//
//	m, err := mmap.Open("events.tsv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	r := m.Reader() // *bytes.Reader over the mapped bytes
//
// Unix uses mmap(2) with madvise(2); Windows uses CreateFileMapping and
// ignores access hints.
package mmap
