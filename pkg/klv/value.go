// Package klv contains the KLV data model (values and local sets) and the
// formats that read and write them.
package klv

import (
	"bytes"
	"cmp"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind is the kind of data held by a Value.
type Kind int

// kinds.
const (
	KindEmpty Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindBlob
	KindSeries
	KindLocalSet
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindSeries:
		return "series"
	case KindLocalSet:
		return "local set"
	}
	return "unknown"
}

// Value is a KLV value.
// The zero value is an empty value, which is used for zero-length fields
// and to signal removal of a tag in child sets.
type Value struct {
	kind   Kind
	i      int64
	u      uint64
	f      float64
	s      string
	b      []byte
	series []Value
	set    *LocalSet
	length int
}

// Empty returns an empty value.
func Empty() Value {
	return Value{}
}

// IntValue returns a signed integer value.
func IntValue(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// UintValue returns an unsigned integer value.
func UintValue(v uint64) Value {
	return Value{kind: KindUint, u: v}
}

// FloatValue returns a floating point value.
func FloatValue(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// StringValue returns a string value.
func StringValue(v string) Value {
	return Value{kind: KindString, s: v}
}

// BlobValue returns a value containing uninterpreted bytes.
func BlobValue(v []byte) Value {
	return Value{kind: KindBlob, b: v}
}

// SeriesValue returns a value containing an ordered series of values.
func SeriesValue(v ...Value) Value {
	return Value{kind: KindSeries, series: v}
}

// SetValue returns a value containing a nested local set.
// The value takes ownership of the set.
func SetValue(v *LocalSet) Value {
	return Value{kind: KindLocalSet, set: v}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty checks whether the value is empty.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// AsInt returns the signed integer held by the value.
func (v Value) AsInt() int64 {
	return v.i
}

// AsUint returns the unsigned integer held by the value.
func (v Value) AsUint() uint64 {
	return v.u
}

// AsFloat returns the float held by the value.
func (v Value) AsFloat() float64 {
	return v.f
}

// AsString returns the string held by the value.
func (v Value) AsString() string {
	return v.s
}

// AsBlob returns the bytes held by the value.
func (v Value) AsBlob() []byte {
	return v.b
}

// AsSeries returns the series held by the value.
func (v Value) AsSeries() []Value {
	return v.series
}

// AsSet returns the local set held by the value.
func (v Value) AsSet() *LocalSet {
	return v.set
}

// Length returns the length, in bytes, the value was read with.
// It is zero when unknown.
func (v Value) Length() int {
	return v.length
}

// WithLength returns a copy of the value carrying a length hint,
// used to write the value back with the same width.
func (v Value) WithLength(length int) Value {
	v.length = length
	return v
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindBlob:
		v.b = bytes.Clone(v.b)

	case KindSeries:
		series := make([]Value, len(v.series))
		for i, e := range v.series {
			series[i] = e.Clone()
		}
		v.series = series

	case KindLocalSet:
		if v.set != nil {
			v.set = v.set.Clone()
		}
	}
	return v
}

// Equal checks whether two values are equal.
// Length hints are ignored.
func (v Value) Equal(o Value) bool {
	return Compare(v, o) == 0
}

func compareFloat(a float64, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	return cmp.Compare(a, b)
}

// Compare defines a total order on values: first by kind, then by content.
// NaN sorts before other floats and is equal to itself.
func Compare(a Value, b Value) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}

	switch a.kind {
	case KindInt:
		return cmp.Compare(a.i, b.i)

	case KindUint:
		return cmp.Compare(a.u, b.u)

	case KindFloat:
		return compareFloat(a.f, b.f)

	case KindString:
		return strings.Compare(a.s, b.s)

	case KindBlob:
		return bytes.Compare(a.b, b.b)

	case KindSeries:
		return slices.CompareFunc(a.series, b.series, Compare)

	case KindLocalSet:
		return compareSets(a.set, b.set)
	}

	return 0
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)

	case KindUint:
		return strconv.FormatUint(v.u, 10)

	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)

	case KindString:
		return strconv.Quote(v.s)

	case KindBlob:
		return "0x" + strings.ToUpper(hex.EncodeToString(v.b))

	case KindSeries:
		tmp := make([]string, len(v.series))
		for i, e := range v.series {
			tmp[i] = e.String()
		}
		return "[" + strings.Join(tmp, ", ") + "]"

	case KindLocalSet:
		return v.set.String()
	}

	return "(empty)"
}

// GoString implements fmt.GoStringer.
func (v Value) GoString() string {
	return fmt.Sprintf("klv.Value{%s: %s}", v.kind, v.String())
}
