// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/tagwire/lib/wire"
)

// Marker keys of the JSON mapping.
const (
	markerUndefined  = "$undefined"
	markerHole       = "$hole"
	markerNumber     = "$number"
	markerDate       = "$date"
	markerSet        = "$set"
	markerRegistered = "$registered"
	markerObject     = "$object"
)

// ErrRegisteredImport is returned by [FromJSON] for a $registered
// marker object.
var ErrRegisteredImport = errors.New("codec: registered values cannot be built from JSON")

// ToJSON renders value as JSON. Objects keep their field order. When
// compact is false the output is indented by two spaces. The result
// has no trailing newline.
func ToJSON(value wire.Value, compact bool) ([]byte, error) {
	var output bytes.Buffer
	if err := writeJSONValue(&output, value, 0); err != nil {
		return nil, err
	}
	if compact {
		return output.Bytes(), nil
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, output.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent JSON: %w", err)
	}
	return indented.Bytes(), nil
}

func writeJSONValue(output *bytes.Buffer, value wire.Value, depth int) error {
	if depth > wire.MaxDepth {
		return fmt.Errorf("value nesting exceeds %d levels", wire.MaxDepth)
	}
	switch v := value.(type) {
	case nil, wire.Null:
		output.WriteString("null")
	case wire.Undefined:
		writeMarker(output, markerUndefined, "true")
	case wire.Hole:
		writeMarker(output, markerHole, "true")
	case wire.Bool:
		output.WriteString(strconv.FormatBool(bool(v)))
	case wire.Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			writeMarker(output, markerNumber, strconv.Quote(v.String()))
			return nil
		}
		if v.IsInteger() {
			output.WriteString(strconv.FormatInt(int64(f), 10))
			return nil
		}
		encoded, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("encode number: %w", err)
		}
		output.Write(encoded)
	case wire.String:
		return writeJSONString(output, string(v))
	case wire.Date:
		writeMarker(output, markerDate, strconv.FormatInt(int64(v), 10))
	case wire.Array:
		return writeJSONElements(output, v, depth)
	case wire.Set:
		output.WriteString(`{"` + markerSet + `":`)
		if err := writeJSONElements(output, v, depth); err != nil {
			return err
		}
		output.WriteByte('}')
	case wire.Object:
		output.WriteByte('{')
		for i, field := range v {
			if i > 0 {
				output.WriteByte(',')
			}
			if err := writeJSONString(output, field.Key); err != nil {
				return err
			}
			output.WriteByte(':')
			if err := writeJSONValue(output, field.Value, depth+1); err != nil {
				return fmt.Errorf("field %q: %w", field.Key, err)
			}
		}
		output.WriteByte('}')
	case wire.Registered:
		object, err := json.Marshal(v.Object)
		if err != nil {
			return fmt.Errorf("encode registered %q: %w", v.Type, err)
		}
		output.WriteString(`{"` + markerRegistered + `":`)
		if err := writeJSONString(output, v.Type); err != nil {
			return err
		}
		output.WriteString(`,"` + markerObject + `":`)
		output.Write(object)
		output.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
	return nil
}

func writeJSONElements(output *bytes.Buffer, elements []wire.Value, depth int) error {
	output.WriteByte('[')
	for i, element := range elements {
		if i > 0 {
			output.WriteByte(',')
		}
		if err := writeJSONValue(output, element, depth+1); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	output.WriteByte(']')
	return nil
}

func writeJSONString(output *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	output.Write(encoded)
	return nil
}

func writeMarker(output *bytes.Buffer, key, literal string) {
	output.WriteString(`{"` + key + `":` + literal + `}`)
}

// FromJSON parses every top-level JSON value in data. Comments and
// trailing commas are accepted. Empty input yields no values and no
// error.
func FromJSON(data []byte) ([]wire.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var values []wire.Value
	for {
		value, err := readJSONValue(decoder, 0)
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("JSON value %d: %w", len(values), err)
		}
		values = append(values, value)
	}
}

func readJSONValue(decoder *json.Decoder, depth int) (wire.Value, error) {
	if depth > wire.MaxDepth {
		return nil, fmt.Errorf("JSON nesting exceeds %d levels", wire.MaxDepth)
	}
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch t := token.(type) {
	case nil:
		return wire.Null{}, nil
	case bool:
		return wire.Bool(t), nil
	case string:
		return wire.String(t), nil
	case json.Number:
		return parseNumber(string(t))
	case json.Delim:
		switch t {
		case '[':
			elements, err := readJSONElements(decoder, depth)
			if err != nil {
				return nil, err
			}
			return wire.Array(elements), nil
		case '{':
			return readJSONObject(decoder, depth)
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", token)
}

func readJSONElements(decoder *json.Decoder, depth int) ([]wire.Value, error) {
	elements := []wire.Value{}
	for decoder.More() {
		element, err := readJSONValue(decoder, depth+1)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		elements = append(elements, element)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}
	return elements, nil
}

func readJSONObject(decoder *json.Decoder, depth int) (wire.Value, error) {
	object := wire.Object{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", token)
		}
		value, err := readJSONValue(decoder, depth+1)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		object = object.With(key, value)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}
	return fromMarker(object)
}

// fromMarker turns a marker object back into the variant it stands
// for. Objects that are not markers are returned unchanged.
func fromMarker(object wire.Object) (wire.Value, error) {
	if _, ok := object.Get(markerRegistered); ok {
		return nil, ErrRegisteredImport
	}
	if len(object) != 1 {
		return object, nil
	}
	field := object[0]
	switch field.Key {
	case markerUndefined:
		if field.Value == wire.Bool(true) {
			return wire.Undefined{}, nil
		}
	case markerHole:
		if field.Value == wire.Bool(true) {
			return wire.Hole{}, nil
		}
	case markerNumber:
		switch field.Value {
		case wire.String("NaN"):
			return wire.Number(math.NaN()), nil
		case wire.String("Infinity"):
			return wire.Number(math.Inf(1)), nil
		case wire.String("-Infinity"):
			return wire.Number(math.Inf(-1)), nil
		}
		return nil, fmt.Errorf("%s: want \"NaN\", \"Infinity\" or \"-Infinity\", got %v", markerNumber, field.Value)
	case markerDate:
		number, ok := field.Value.(wire.Number)
		if !ok || !number.IsInteger() {
			return nil, fmt.Errorf("%s: want integer milliseconds, got %v", markerDate, field.Value)
		}
		return wire.Date(int64(number)), nil
	case markerSet:
		elements, ok := field.Value.(wire.Array)
		if !ok {
			return nil, fmt.Errorf("%s: want an array, got %v", markerSet, field.Value)
		}
		return wire.NewSet(elements...), nil
	}
	return object, nil
}

func parseNumber(text string) (wire.Value, error) {
	if integer, err := strconv.ParseInt(text, 10, 64); err == nil {
		return wire.Int(integer), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
		// Literals beyond float64 overflow to the matching infinity.
		return wire.Number(f), nil
	}
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", text, err)
	}
	return wire.Number(f), nil
}

// unexpectedEOF reports truncation inside a container as an error
// rather than the clean end of input.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
