// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/tagwire/lib/wire"
)

// CBOR tag numbers used by [ToCBOR].
const (
	TagEpochTime = 1
	TagSet       = 258
)

// undefined is the CBOR simple value 23.
const undefined = cbor.SimpleValue(23)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Same logical data always produces identical bytes.
var encMode cbor.EncMode

// decMode decodes into map[string]any for any-typed targets, which is
// the only map shape ToCBOR produces.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Registered objects are arbitrary application types. Those that
	// implement encoding.TextMarshaler keep their text identity rather
	// than collapsing to an empty map of unexported fields.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// NewEncoder returns a CBOR encoder that writes a CBOR sequence to w
// using Core Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// MarshalValue encodes value as deterministic CBOR under the mapping
// of [ToCBOR].
func MarshalValue(value wire.Value) ([]byte, error) {
	tree, err := ToCBOR(value)
	if err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode CBOR: %w", err)
	}
	return data, nil
}

// ToCBOR converts value into a tree of Go values that the CBOR encoder
// renders under the package's CBOR mapping. Integral numbers become
// int64 so they take CBOR's integer major types.
func ToCBOR(value wire.Value) (any, error) {
	return toCBOR(value, 0)
}

func toCBOR(value wire.Value, depth int) (any, error) {
	if depth > wire.MaxDepth {
		return nil, fmt.Errorf("value nesting exceeds %d levels", wire.MaxDepth)
	}
	switch v := value.(type) {
	case nil, wire.Null:
		return nil, nil
	case wire.Undefined, wire.Hole:
		return undefined, nil
	case wire.Bool:
		return bool(v), nil
	case wire.Number:
		if v.IsInteger() {
			return int64(v), nil
		}
		return float64(v), nil
	case wire.String:
		return string(v), nil
	case wire.Date:
		return cbor.Tag{Number: TagEpochTime, Content: epochSeconds(v)}, nil
	case wire.Array:
		return toCBORElements(v, depth)
	case wire.Set:
		elements, err := toCBORElements(v, depth)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TagSet, Content: elements}, nil
	case wire.Object:
		tree := make(map[string]any, len(v))
		for _, field := range v {
			converted, err := toCBOR(field.Value, depth+1)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Key, err)
			}
			tree[field.Key] = converted
		}
		return tree, nil
	case wire.Registered:
		return map[string]any{
			markerRegistered: v.Type,
			markerObject:     v.Object,
		}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", value)
}

func toCBORElements(elements []wire.Value, depth int) ([]any, error) {
	tree := make([]any, len(elements))
	for i, element := range elements {
		converted, err := toCBOR(element, depth+1)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		tree[i] = converted
	}
	return tree, nil
}

// epochSeconds returns an integer when the date falls on a whole
// second, so the common case encodes as a CBOR integer.
func epochSeconds(date wire.Date) any {
	milliseconds := int64(date)
	if milliseconds%1000 == 0 {
		return milliseconds / 1000
	}
	return float64(milliseconds) / 1000
}
