package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Field is an optional payload field that distinguishes "absent" from "present".
// A Field is set exactly when its JSON key appears in the decoded document,
// so an update payload can leave untouched columns out of its Diff.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the held value and whether the field is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsSet reports whether the field was supplied.
func (f Field[T]) IsSet() bool {
	return f.set
}

// UnmarshalJSON marks the field as set. A JSON null is only accepted when T
// can represent nil; otherwise it is rejected rather than zeroing the column.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if !nullable[T]() {
			return fmt.Errorf("null is not a valid %s", reflect.TypeFor[T]())
		}
		var zero T
		f.value, f.set = zero, true
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

// MarshalJSON encodes the held value, or null when unset.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func nullable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	}
	return false
}
