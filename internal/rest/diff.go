package rest

// Diff is an ordered set of column assignments. A Diff built from a create
// payload assigns every column; one built from an update payload assigns only
// the columns the caller supplied.
type Diff struct {
	columns []string
	values  map[string]any
}

// Set assigns v to column. Re-assigning a column keeps its original position.
func (d *Diff) Set(column string, v any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[column]; !ok {
		d.columns = append(d.columns, column)
	}
	d.values[column] = v
}

// Get returns the value assigned to column, if any.
func (d Diff) Get(column string) (any, bool) {
	v, ok := d.values[column]
	return v, ok
}

// Columns returns the assigned columns in assignment order.
func (d Diff) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of assigned columns.
func (d Diff) Len() int {
	return len(d.columns)
}

// Map returns a copy of the assignments keyed by column.
func (d Diff) Map() map[string]any {
	m := make(map[string]any, len(d.values))
	for k, v := range d.values {
		m[k] = v
	}
	return m
}

// WithKey returns a copy of d with every part of key assigned, so that the
// diff addresses exactly the record named by key.
func (d Diff) WithKey(key Key) Diff {
	out := Diff{
		columns: d.Columns(),
		values:  d.Map(),
	}
	for _, part := range key {
		out.Set(part.Column, part.Value)
	}
	return out
}

// SetField copies f into d under column when f is set.
func SetField[T any](d *Diff, column string, f Field[T]) {
	if v, ok := f.Get(); ok {
		d.Set(column, v)
	}
}
