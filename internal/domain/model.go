package domain

// Eq is a single "column equals value" constraint.
type Eq struct {
	Column string
	Value  any
}

// Condition is a conjunction of equality constraints. The zero value matches
// every row.
type Condition []Eq

// And returns a copy of c with one more constraint appended.
func (c Condition) And(column string, value any) Condition {
	next := make(Condition, len(c), len(c)+1)
	copy(next, c)
	return append(next, Eq{Column: column, Value: value})
}

// Empty reports whether the condition carries no constraints.
func (c Condition) Empty() bool {
	return len(c) == 0
}

// PageRequest is a resolved page window: how many rows to skip and how many
// to return.
type PageRequest struct {
	Offset int
	Limit  int
}
