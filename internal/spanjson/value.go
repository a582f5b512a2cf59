// Package spanjson parses JSON into a tree of tagged values that each
// remember the byte range they were parsed from, so diagnostics can
// point at the exact substring that caused them.
package spanjson

import (
	"rplc/internal/source"
)

// Kind tags the JSON value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "invalid"
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key     string
	KeySpan source.Span
	Value   *Value
}

// Value is one node of the parsed tree. Span covers the bytes the
// value was parsed from, half-open.
type Value struct {
	Kind Kind
	Span source.Span

	str   string // decoded string value
	i64   int64
	isInt bool // literal had no fraction/exponent and fits int64
	b     bool
	arr   []*Value
	obj   []Member
}

// IsNull reports whether the value is the JSON null literal.
func (v *Value) IsNull() bool {
	return v != nil && v.Kind == KindNull
}

// IsNumber reports whether the value is a JSON number of any shape.
func (v *Value) IsNumber() bool {
	return v != nil && v.Kind == KindNumber
}

// AsString returns the decoded string value.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.Kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the number as int64 when the literal was an integer
// without fraction or exponent. "10.5" and "1e3" are not integers.
func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.Kind != KindNumber || !v.isInt {
		return 0, false
	}
	return v.i64, true
}

// AsArray returns the element list of an array value.
func (v *Value) AsArray() ([]*Value, bool) {
	if v == nil || v.Kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the members of an object value, in source order.
func (v *Value) AsObject() ([]Member, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Get returns the value of the first member with the given key,
// or nil when the value is not an object or has no such member.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	for i := range v.obj {
		if v.obj[i].Key == key {
			return v.obj[i].Value
		}
	}
	return nil
}
