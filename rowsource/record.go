package rowsource

// Record is a view over the fields of the current row.
//
// The backing slice is reused by the Scanner, so a Record is only valid until
// the next call to Next. Copy the strings you want to keep.
type Record struct {
	schema *Schema
	fields []string
	empty  string
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Field returns the field at pos, or the empty-value sentinel when the field is
// empty or pos is out of range.
func (r Record) Field(pos int) string {
	v, _ := r.Lookup(pos)
	return v
}

// Lookup is like Field but also reports whether the field carried a value.
func (r Record) Lookup(pos int) (string, bool) {
	if pos < 0 || pos >= len(r.fields) || r.fields[pos] == "" {
		return r.empty, false
	}
	return r.fields[pos], true
}

// Get returns the field of the column called name.
// Prefer resolving positions once and calling Field in hot loops.
func (r Record) Get(name string) string {
	if r.schema == nil {
		return r.empty
	}
	pos, ok := r.schema.Index(name)
	if !ok {
		return r.empty
	}
	return r.Field(pos)
}
