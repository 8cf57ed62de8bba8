package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/foxfriends/woof/internal/domain"
)

// KeyColumn is one column of a primary key together with the parser that
// turns a path segment into the column's value.
type KeyColumn struct {
	Name  string
	parse func(string) (any, error)
}

// NewKeyColumn returns a KeyColumn whose segments are decoded by parse.
func NewKeyColumn[T any](name string, parse func(string) (T, error)) KeyColumn {
	return KeyColumn{
		Name: name,
		parse: func(s string) (any, error) {
			return parse(s)
		},
	}
}

// UUIDColumn is a key column holding a uuid.UUID.
func UUIDColumn(name string) KeyColumn {
	return NewKeyColumn(name, uuid.Parse)
}

// IntColumn is a key column holding an int64.
func IntColumn(name string) KeyColumn {
	return NewKeyColumn(name, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// StringColumn is a key column holding the raw segment.
func StringColumn(name string) KeyColumn {
	return NewKeyColumn(name, func(s string) (string, error) {
		return s, nil
	})
}

// Parse decodes a single path segment.
func (c KeyColumn) Parse(segment string) (any, error) {
	return c.parse(segment)
}

// KeyPart is a single column value of a primary key.
type KeyPart struct {
	Column string
	Value  any
}

// Key is a primary key value, ordered as the key columns are declared.
type Key []KeyPart

// Path encodes the key as escaped path segments joined by "/".
func (k Key) Path() string {
	segments := make([]string, len(k))
	for i, part := range k {
		segments[i] = url.PathEscape(fmt.Sprint(part.Value))
	}
	return strings.Join(segments, "/")
}

// String renders the key for logs, e.g. "post=1,voter=2".
func (k Key) String() string {
	var b strings.Builder
	for i, part := range k {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", part.Column, part.Value)
	}
	return b.String()
}

// Values returns the key values in column order.
func (k Key) Values() []any {
	values := make([]any, len(k))
	for i, part := range k {
		values[i] = part.Value
	}
	return values
}

// Condition returns the equality constraints that select the keyed record.
func (k Key) Condition() domain.Condition {
	var cond domain.Condition
	for _, part := range k {
		cond = cond.And(part.Column, part.Value)
	}
	return cond
}

// PathValues looks up matched route parameters by name. gin.Params satisfies it.
type PathValues interface {
	Get(name string) (string, bool)
}

// segmentName is the route parameter name of column under scope.
func segmentName(column, scope string) string {
	if scope == "" {
		return column
	}
	return scope + "_" + column
}

// IDPath returns the route template addressing one record: one ":name"
// parameter per key column, in declared order, joined by "/".
func IDPath(cols []KeyColumn, scope string) string {
	segments := make([]string, len(cols))
	for i, col := range cols {
		segments[i] = ":" + segmentName(col.Name, scope)
	}
	return strings.Join(segments, "/")
}

// IDFromPath decodes a key from matched route parameters. Decoding stops at
// the first missing or unparseable segment; a partial key is never returned.
func IDFromPath(cols []KeyColumn, scope string, params PathValues) (Key, error) {
	key := make(Key, 0, len(cols))
	for _, col := range cols {
		name := segmentName(col.Name, scope)
		raw, ok := params.Get(name)
		if !ok || raw == "" {
			return nil, domain.MissingPathSegment(name)
		}
		v, err := col.Parse(raw)
		if err != nil {
			return nil, domain.InvalidPathSegment(name, err)
		}
		key = append(key, KeyPart{Column: col.Name, Value: v})
	}
	return key, nil
}

// keyFromDiff collects the key columns assigned in d.
func keyFromDiff(cols []KeyColumn, d Diff) (Key, error) {
	key := make(Key, 0, len(cols))
	for _, col := range cols {
		v, ok := d.Get(col.Name)
		if !ok {
			return nil, fmt.Errorf("key column %q not assigned", col.Name)
		}
		key = append(key, KeyPart{Column: col.Name, Value: v})
	}
	return key, nil
}

func columnNames(cols []KeyColumn) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}
