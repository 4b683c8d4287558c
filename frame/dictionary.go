package frame

import "github.com/cockroachdb/swiss"

// Dictionary assigns dense integer codes to distinct values in first-seen
// order. Codes start at 0 and are never reused or reassigned.
type Dictionary struct {
	codes  swiss.Map[string, uint32]
	values []string // code -> value
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	d := &Dictionary{}
	d.codes.Init(16)
	return d
}

// Encode returns the code of value, assigning the next code if value has not
// been seen before.
func (d *Dictionary) Encode(value string) uint32 {
	if code, ok := d.codes.Get(value); ok {
		return code
	}
	code := uint32(len(d.values))
	d.codes.Put(value, code)
	d.values = append(d.values, value)
	return code
}

// Code returns the code assigned to value, if any.
func (d *Dictionary) Code(value string) (uint32, bool) {
	return d.codes.Get(value)
}

// Value returns the value that was assigned code.
func (d *Dictionary) Value(code uint32) (string, bool) {
	if int(code) >= len(d.values) {
		return "", false
	}
	return d.values[code], true
}

// Len returns the number of distinct values.
func (d *Dictionary) Len() int {
	return len(d.values)
}

// Values returns the distinct values indexed by code. The slice must not be
// modified.
func (d *Dictionary) Values() []string {
	return d.values
}
