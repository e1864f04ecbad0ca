// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"math"
	"strconv"
)

// Tag is the leading byte of an encoded [Value].
type Tag byte

const (
	TagNull Tag = iota
	TagFalse
	TagTrue
	TagUndefined
	TagPositiveInfinity
	TagNegativeInfinity
	TagNaN
	TagHole
	TagSmallPositiveInt // unsigned varint follows
	TagInteger          // signed integer follows
	TagJSON             // length-prefixed JSON text follows
	TagEmptyString
	TagOneCharString // one code-unit varint follows
	TagString        // length-prefixed string follows
	TagDate          // signed integer milliseconds follow
	TagArray         // varint count, then elements
	TagSet           // varint count, then elements
	TagObject        // varint count, then (token, value) pairs
	TagRegistered    // token type name, then serializer payload

	// TagSmallIntBase is the first inline-integer tag. Tag
	// TagSmallIntBase+n encodes the integer n for n in [0, MaxInlineInt].
	TagSmallIntBase Tag = 32
)

// MaxInlineInt is the largest integer folded into the tag byte.
const MaxInlineInt = 0xff - int(TagSmallIntBase)

// MaxDepth bounds container nesting when decoding, so corrupt input
// cannot recurse without limit.
const MaxDepth = 512

var tagNames = [...]string{
	TagNull:             "null",
	TagFalse:            "false",
	TagTrue:             "true",
	TagUndefined:        "undefined",
	TagPositiveInfinity: "+inf",
	TagNegativeInfinity: "-inf",
	TagNaN:              "nan",
	TagHole:             "hole",
	TagSmallPositiveInt: "uint",
	TagInteger:          "int",
	TagJSON:             "json",
	TagEmptyString:      "empty-string",
	TagOneCharString:    "char",
	TagString:           "string",
	TagDate:             "date",
	TagArray:            "array",
	TagSet:              "set",
	TagObject:           "object",
	TagRegistered:       "registered",
}

func (t Tag) String() string {
	if t >= TagSmallIntBase {
		return "small-int(" + strconv.Itoa(int(t-TagSmallIntBase)) + ")"
	}
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	return t >= TagSmallIntBase || t <= TagRegistered
}

// WriteSerializable writes value as a tagged, recursively encoded
// value. A nil value is written as [Null].
func (b *Buffer) WriteSerializable(value Value) error {
	switch value := value.(type) {
	case nil, Null:
		b.putTag(TagNull)
	case Undefined:
		b.putTag(TagUndefined)
	case Hole:
		b.putTag(TagHole)
	case Bool:
		if value {
			b.putTag(TagTrue)
		} else {
			b.putTag(TagFalse)
		}
	case Number:
		return b.writeNumber(float64(value))
	case String:
		return b.writeStringValue(string(value))
	case Date:
		b.putTag(TagDate)
		b.WriteInteger(int64(value))
	case Array:
		b.putTag(TagArray)
		return b.writeElements(value)
	case Set:
		b.putTag(TagSet)
		return b.writeElements(value)
	case Object:
		return b.writeObject(value)
	case Registered:
		return b.writeRegistered(value)
	default:
		return fmt.Errorf("wire: unsupported value type %T", value)
	}
	return nil
}

func (b *Buffer) putTag(tag Tag) {
	b.grow(1)[0] = byte(tag)
}

func (b *Buffer) writeNumber(f float64) error {
	switch {
	case math.IsNaN(f):
		b.putTag(TagNaN)
		return nil
	case math.IsInf(f, 1):
		b.putTag(TagPositiveInfinity)
		return nil
	case math.IsInf(f, -1):
		b.putTag(TagNegativeInfinity)
		return nil
	case !Number(f).IsInteger():
		b.putTag(TagJSON)
		return b.WriteJSON(f)
	}
	n := int64(f)
	switch {
	case n >= 0 && n <= int64(MaxInlineInt):
		b.putTag(TagSmallIntBase + Tag(n))
	case n >= 0 && n <= MaxSmallNonNegativeInteger:
		b.putTag(TagSmallPositiveInt)
		return b.WriteSmallNonNegativeInteger(int(n))
	default:
		b.putTag(TagInteger)
		b.WriteInteger(n)
	}
	return nil
}

func (b *Buffer) writeStringValue(s string) error {
	switch utf16Length(s) {
	case 0:
		b.putTag(TagEmptyString)
	case 1:
		b.putTag(TagOneCharString)
		for _, r := range s {
			b.putVarint(uint32(r))
		}
	default:
		b.putTag(TagString)
		return b.WriteString(s)
	}
	return nil
}

// writeElements is shared by Array and Set.
func (b *Buffer) writeElements(elements []Value) error {
	if err := b.WriteSmallNonNegativeInteger(len(elements)); err != nil {
		return err
	}
	for _, element := range elements {
		if err := b.WriteSerializable(element); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) writeObject(object Object) error {
	b.putTag(TagObject)
	if err := b.WriteSmallNonNegativeInteger(len(object)); err != nil {
		return err
	}
	for _, field := range object {
		if err := b.WriteToken(field.Key); err != nil {
			return err
		}
		if err := b.WriteSerializable(field.Value); err != nil {
			return err
		}
	}
	return nil
}

// ReadSerializable reads one value written by
// [Buffer.WriteSerializable].
//
// Called from a registered unserializer, it continues the nesting
// count of the enclosing value.
func (b *Buffer) ReadSerializable() (Value, error) {
	return b.readValue(b.depth)
}

func (b *Buffer) readValue(depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, malformed("nesting deeper than %d", MaxDepth)
	}
	offset := b.offset
	raw, err := b.ReadByte()
	if err != nil {
		return nil, err
	}
	tag := Tag(raw)
	if tag >= TagSmallIntBase {
		return Number(tag - TagSmallIntBase), nil
	}
	switch tag {
	case TagNull:
		return Null{}, nil
	case TagFalse:
		return Bool(false), nil
	case TagTrue:
		return Bool(true), nil
	case TagUndefined:
		return Undefined{}, nil
	case TagPositiveInfinity:
		return Number(math.Inf(1)), nil
	case TagNegativeInfinity:
		return Number(math.Inf(-1)), nil
	case TagNaN:
		return Number(math.NaN()), nil
	case TagHole:
		return Hole{}, nil
	case TagSmallPositiveInt:
		n, err := b.ReadSmallNonNegativeInteger()
		if err != nil {
			return nil, err
		}
		return Number(n), nil
	case TagInteger:
		n, err := b.ReadInteger()
		if err != nil {
			return nil, err
		}
		return Number(n), nil
	case TagJSON:
		var f *float64
		if err := b.ReadJSON(&f); err != nil {
			return nil, err
		}
		if f == nil {
			return nil, malformed("json number payload is null")
		}
		return Number(*f), nil
	case TagEmptyString:
		return String(""), nil
	case TagOneCharString:
		unit, err := b.readCodeUnit()
		if err != nil {
			return nil, err
		}
		return String(string(rune(unit))), nil
	case TagString:
		s, err := b.ReadString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagDate:
		ms, err := b.ReadInteger()
		if err != nil {
			return nil, err
		}
		return Date(ms), nil
	case TagArray:
		elements, err := b.readElements(depth)
		if err != nil {
			return nil, err
		}
		return Array(elements), nil
	case TagSet:
		elements, err := b.readElements(depth)
		if err != nil {
			return nil, err
		}
		return Set(elements), nil
	case TagObject:
		return b.readObject(depth)
	case TagRegistered:
		return b.readRegistered(depth)
	default:
		return nil, &UnknownTagError{Tag: raw, Offset: offset}
	}
}

// readCount reads a container length. Every element occupies at least
// one byte, so a count beyond the remaining bytes is truncation, caught
// here before allocating for it.
func (b *Buffer) readCount() (int, error) {
	count, err := b.ReadSmallNonNegativeInteger()
	if err != nil {
		return 0, err
	}
	if count > b.Remaining() {
		return 0, ErrUnexpectedEnd
	}
	return count, nil
}

func (b *Buffer) readElements(depth int) ([]Value, error) {
	count, err := b.readCount()
	if err != nil {
		return nil, err
	}
	elements := make([]Value, count)
	for i := range elements {
		element, err := b.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		elements[i] = element
	}
	return elements, nil
}

func (b *Buffer) readObject(depth int) (Value, error) {
	count, err := b.readCount()
	if err != nil {
		return nil, err
	}
	object := make(Object, count)
	for i := range object {
		key, err := b.ReadToken()
		if err != nil {
			return nil, err
		}
		value, err := b.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		object[i] = Field{Key: key, Value: value}
	}
	return object, nil
}

// Marshal encodes values, in order, into a fresh buffer and returns
// the bytes. Registered values need a [Marshaler] object; use a Buffer
// with [Register] for anything else.
func Marshal(values ...Value) ([]byte, error) {
	buffer := New()
	for _, value := range values {
		if err := buffer.WriteSerializable(value); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}

// Unmarshal decodes every value in data. It fails on a Registered
// value, since a fresh buffer has no serializers.
func Unmarshal(data []byte) ([]Value, error) {
	buffer := FromBytes(data)
	var values []Value
	for buffer.Remaining() > 0 {
		value, err := buffer.ReadSerializable()
		if err != nil {
			return nil, fmt.Errorf("value %d at offset %d: %w", len(values), buffer.Offset(), err)
		}
		values = append(values, value)
	}
	return values, nil
}
