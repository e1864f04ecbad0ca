// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"math"
	"reflect"
	"strconv"
	"time"
)

// Kind identifies the variant of a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindNumber
	KindString
	KindHole
	KindDate
	KindArray
	KindSet
	KindObject
	KindRegistered
)

var kindNames = [...]string{
	KindNull:       "null",
	KindUndefined:  "undefined",
	KindBool:       "bool",
	KindNumber:     "number",
	KindString:     "string",
	KindHole:       "hole",
	KindDate:       "date",
	KindArray:      "array",
	KindSet:        "set",
	KindObject:     "object",
	KindRegistered: "registered",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a serializable value. The set of implementations is closed:
// exactly the types declared in this package.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the null value.
type Null struct{}

// Undefined is a value that is present but has no content, distinct
// from [Null] and from [Hole].
type Undefined struct{}

// Hole marks a gap in a sparse array. It is distinct from an Undefined
// element.
type Hole struct{}

// Bool is a boolean.
type Bool bool

// Number is a double-precision number. Integral values within
// ±[MaxSafeInteger] use compact integer encodings; everything else,
// including fractions and integers beyond the safe range, is carried
// as JSON text. NaN and the infinities have dedicated tags.
type Number float64

// String is a Unicode string.
type String string

// Date is a point in time in milliseconds since the Unix epoch.
type Date int64

// Array is an ordered list of values. Elements may be [Hole].
type Array []Value

// Set is a collection of distinct values in insertion order. Its
// encoding preserves that order; it is not sorted.
type Set []Value

// Object is a keyed record. Fields keep their order, which is the
// order their keys are written to the token table.
type Object []Field

// Field is one key/value pair of an [Object].
type Field struct {
	Key   string
	Value Value
}

// Registered is an application object travelling under a type name.
// The payload is written and read by the serializer registered under
// Type on the buffer (see [Register]).
type Registered struct {
	Type   string
	Object any
}

func (Null) Kind() Kind       { return KindNull }
func (Undefined) Kind() Kind  { return KindUndefined }
func (Hole) Kind() Kind       { return KindHole }
func (Bool) Kind() Kind       { return KindBool }
func (Number) Kind() Kind     { return KindNumber }
func (String) Kind() Kind     { return KindString }
func (Date) Kind() Kind       { return KindDate }
func (Array) Kind() Kind      { return KindArray }
func (Set) Kind() Kind        { return KindSet }
func (Object) Kind() Kind     { return KindObject }
func (Registered) Kind() Kind { return KindRegistered }

func (Null) isValue()       {}
func (Undefined) isValue()  {}
func (Hole) isValue()       {}
func (Bool) isValue()       {}
func (Number) isValue()     {}
func (String) isValue()     {}
func (Date) isValue()       {}
func (Array) isValue()      {}
func (Set) isValue()        {}
func (Object) isValue()     {}
func (Registered) isValue() {}

// Int returns the Number for an integer. Integers beyond
// ±[MaxSafeInteger] lose precision, as they would in any float64.
func Int(n int64) Number { return Number(n) }

// Float returns the Number for f.
func Float(f float64) Number { return Number(f) }

// Str returns the String for s.
func Str(s string) String { return String(s) }

// DateOf returns the Date for t, truncated to milliseconds.
func DateOf(t time.Time) Date { return Date(t.UnixMilli()) }

// Time returns d as a UTC time.
func (d Date) Time() time.Time { return time.UnixMilli(int64(d)).UTC() }

// Custom returns a Registered value for object under type name.
func Custom(name string, object any) Registered {
	return Registered{Type: name, Object: object}
}

// String formats n as NaN, Infinity, -Infinity, or the shortest
// decimal that round-trips.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsInteger reports whether n is integral and within ±MaxSafeInteger.
func (n Number) IsInteger() bool {
	f := float64(n)
	return f == math.Trunc(f) && math.Abs(f) <= MaxSafeInteger
}

// NewObject builds an Object from alternating keys and values. It
// panics if pairs has odd length or a key is not a string, which is a
// programming error at the call site.
func NewObject(pairs ...any) Object {
	if len(pairs)%2 != 0 {
		panic("wire.NewObject: odd number of arguments")
	}
	object := make(Object, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("wire.NewObject: key is not a string")
		}
		value, _ := pairs[i+1].(Value)
		if value == nil {
			value = Null{}
		}
		object = object.With(key, value)
	}
	return object
}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	for _, field := range o {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// With returns o with key set to value. An existing field keeps its
// position and is updated in place; a new field is appended.
func (o Object) With(key string, value Value) Object {
	for i, field := range o {
		if field.Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Field{Key: key, Value: value})
}

// NewSet builds a Set from values in order, dropping any value [Equal]
// to one already present.
func NewSet(values ...Value) Set {
	set := make(Set, 0, len(values))
	for _, value := range values {
		if !set.Contains(value) {
			set = append(set, value)
		}
	}
	return set
}

// Contains reports whether s holds a value Equal to value.
func (s Set) Contains(value Value) bool {
	for _, member := range s {
		if Equal(member, value) {
			return true
		}
	}
	return false
}

// Equal reports whether a and b are the same value. Containers compare
// element by element and in order, including Sets. NaN equals NaN, so
// that a decoded NaN equals the one that was written. Registered
// values compare their objects with [reflect.DeepEqual]. A nil Value
// equals [Null].
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch left := a.(type) {
	case Null, Undefined, Hole:
		return true
	case Bool:
		return left == b.(Bool)
	case Number:
		right := b.(Number)
		if math.IsNaN(float64(left)) {
			return math.IsNaN(float64(right))
		}
		return left == right
	case String:
		return left == b.(String)
	case Date:
		return left == b.(Date)
	case Array:
		return equalElements(left, b.(Array))
	case Set:
		return equalElements(left, b.(Set))
	case Object:
		right := b.(Object)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if left[i].Key != right[i].Key || !Equal(left[i].Value, right[i].Value) {
				return false
			}
		}
		return true
	case Registered:
		right := b.(Registered)
		return left.Type == right.Type && reflect.DeepEqual(left.Object, right.Object)
	}
	return false
}

func equalElements(left, right []Value) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !Equal(left[i], right[i]) {
			return false
		}
	}
	return true
}
